package dto

const (
	MsgCredentialsRequired = "Username and password are required."
	MsgRequiredFields      = "One or more required fields are empty."
	MsgInvalidDateTime     = "Invalid date/time format."
	MsgInvalidPriority     = "Invalid task priority."
	MsgInvalidTaskStatus   = "Invalid task status."
	MsgTaskDetailsRequired = "Task details are required."
	MsgTaskDetailsTooLong  = "Task details must not exceed 1000 characters."
	MsgTaskNotFound        = "Task not found."
	MsgInvalidAccountID    = "Invalid account ID format."
	MsgInvalidAccountState = "Invalid account status."
)

// Ключи FieldMessages: "Поле.тег" или просто "Поле" для любого правила.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (LoginForm) FieldMessages() map[string]string {
	return map[string]string{
		"Username": MsgCredentialsRequired,
		"Password": MsgCredentialsRequired,
	}
}

type CreateTaskForm struct {
	Details  string `validate:"required,max=1000"`
	Date     string `validate:"required"`
	Time     string `validate:"required"`
	Priority string `validate:"required,oneof=1 2 3"`
}

func (CreateTaskForm) FieldMessages() map[string]string {
	return map[string]string{
		"Details.required": MsgTaskDetailsRequired,
		"Details.max":      MsgTaskDetailsTooLong,
		"Date":             MsgInvalidDateTime,
		"Time":             MsgInvalidDateTime,
		"Priority":         MsgInvalidPriority,
	}
}

type UpdateTaskForm struct {
	TaskID     string `validate:"required,number"`
	Details    string `validate:"required,max=1000"`
	Date       string `validate:"required"`
	Time       string `validate:"required"`
	PriorityID string `validate:"required,oneof=1 2 3"`
	StatusID   string `validate:"omitempty,oneof=1 2 3"`
}

func (UpdateTaskForm) FieldMessages() map[string]string {
	return map[string]string{
		"TaskID":           MsgTaskNotFound,
		"Details.required": MsgTaskDetailsRequired,
		"Details.max":      MsgTaskDetailsTooLong,
		"Date":             MsgInvalidDateTime,
		"Time":             MsgInvalidDateTime,
		"PriorityID":       MsgInvalidPriority,
		"StatusID":         MsgInvalidTaskStatus,
	}
}

type UpdateProfileForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Password  string
}

func (UpdateProfileForm) FieldMessages() map[string]string {
	return map[string]string{
		"FirstName": MsgRequiredFields,
		"LastName":  MsgRequiredFields,
	}
}

type CreateAccountForm struct {
	Username  string `validate:"required"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

func (CreateAccountForm) FieldMessages() map[string]string {
	return map[string]string{
		"Username":  MsgRequiredFields,
		"FirstName": MsgRequiredFields,
		"LastName":  MsgRequiredFields,
	}
}

type UpdateAccountForm struct {
	AccountID     string `validate:"required,number"`
	Username      string `validate:"required"`
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	Password      string
	Status        string `validate:"required,oneof=1 2"`
	ResetPassword bool
}

func (UpdateAccountForm) FieldMessages() map[string]string {
	return map[string]string{
		"AccountID": MsgInvalidAccountID,
		"Username":  MsgRequiredFields,
		"FirstName": MsgRequiredFields,
		"LastName":  MsgRequiredFields,
		"Status":    MsgInvalidAccountState,
	}
}
