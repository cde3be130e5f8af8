package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldEmail      = "email"
	FieldVehicleID  = "vehicle_id"
	FieldEntryID    = "entry_id"
	FieldLiters     = "liters"
	FieldKilometers = "kilometers"
	FieldCost       = "cost"
	FieldBackend    = "backend"
	FieldKey        = "key"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentAccount = "account"
	ComponentVehicle = "vehicle"
	ComponentFuel    = "fuel"
	ComponentStorage = "storage"
	ComponentKV      = "kv"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpValidate = "validate"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpRegister = "register"
	OpStats    = "stats"
)
