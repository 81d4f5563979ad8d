package validator

import (
	"planwise-api/core/validation"
	"planwise-api/modules/group/dto"
)

const (
	maxNameLength     = 100
	maxPasswordLength = 72 // bcrypt input limit, in bytes
)

func validateCredentials(result *validation.Result, groupName, password string) {
	result.Required("group_name", groupName)
	result.MaxLength("group_name", groupName, maxNameLength)
	result.Required("password", password)
	result.MaxBytes("password", password, maxPasswordLength)
}

func ValidateCreateGroupRequest(req *dto.CreateGroupRequest) *validation.Result {
	result := &validation.Result{}
	validateCredentials(result, req.GroupName, req.Password)
	return result
}

func ValidateJoinGroupRequest(req *dto.JoinGroupRequest) *validation.Result {
	result := &validation.Result{}
	validateCredentials(result, req.GroupName, req.Password)
	result.Required("username", req.Username)
	result.MaxLength("username", req.Username, maxNameLength)
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *validation.Result {
	result := &validation.Result{}
	validateCredentials(result, req.GroupName, req.Password)
	return result
}
