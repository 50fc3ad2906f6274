package convert

// Entity types and classes. The type strings are the fixed vocabulary the
// entity key scheme is built on; downstream consumers index by them.
const (
	AccountEntityType  = "jamf_account"
	AccountEntityClass = "Account"

	AdminEntityType  = "jamf_user"
	AdminEntityClass = "User"

	GroupEntityType  = "jamf_group"
	GroupEntityClass = "UserGroup"

	UserEntityType  = "device_user"
	UserEntityClass = "User"

	MobileDeviceEntityType  = "mobile_device"
	MobileDeviceEntityClass = "Device"

	ComputerEntityType  = "user_endpoint"
	ComputerEntityClass = "Device"

	ConfigurationProfileEntityType  = "osx_configuration_profile"
	ConfigurationProfileEntityClass = "Configuration"

	ApplicationEntityType  = "macos_app"
	ApplicationEntityClass = "Application"
)

// Raw data tags.
const (
	rawDataDefault = "default"
	rawDataDetail  = "detail"
)
