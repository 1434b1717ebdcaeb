package enums

// Flow identifies which multi-step conversation a chat is currently in.
// A chat holds at most one active flow.
type Flow string

const (
	FlowRegistration  Flow = "REGISTRATION"
	FlowProfile       Flow = "PROFILE"
	FlowAddChannel    Flow = "ADD_CHANNEL"
	FlowManageSchools Flow = "MANAGE_SCHOOLS"
)

// Stage is one state within a flow's state machine.
type Stage string

const (
	StageSelectGender   Stage = "SELECT_GENDER"
	StageSelectProvince Stage = "SELECT_PROVINCE"
	StageSelectCity     Stage = "SELECT_CITY"

	StageAwaitName    Stage = "AWAIT_NAME"
	StageAwaitAge     Stage = "AWAIT_AGE"
	StageAwaitPhone   Stage = "AWAIT_PHONE"
	StageSelectSchool Stage = "SELECT_SCHOOL"

	StageAwaitButtonText Stage = "AWAIT_BUTTON_TEXT"
	StageConfirmChannel  Stage = "CONFIRM_CHANNEL"

	StageAdminSelectProvince Stage = "ADMIN_SELECT_PROVINCE"
	StageAdminSelectCity     Stage = "ADMIN_SELECT_CITY"
	StageAdminAddSchools     Stage = "ADMIN_ADD_SCHOOLS"
)
