package jamf

// BasicRecord is the minimal id/name pair the API uses for linked resources.
type BasicRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// LDAPServer identifies the LDAP server a user record is sourced from.
// Jamf reports {id: -1, name: "None"} when no server is configured.
type LDAPServer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserLinks holds the resources linked to a user. The serialized link lists
// are carried onto the user entity as opaque strings; only the presence of
// computers and mobile devices feeds derived fields.
type UserLinks struct {
	Computers         []BasicRecord `json:"computers"`
	Peripherals       []BasicRecord `json:"peripherals"`
	MobileDevices     []BasicRecord `json:"mobile_devices"`
	VPPAssignments    []BasicRecord `json:"vpp_assignments"`
	TotalVPPCodeCount int           `json:"total_vpp_code_count"`
}

// User is a Jamf user record from the users collection.
type User struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	FullName             string      `json:"full_name"`
	Email                string      `json:"email"`
	EmailAddress         string      `json:"email_address"`
	PhoneNumber          string      `json:"phone_number"`
	Position             string      `json:"position"`
	EnableCustomPhotoURL bool        `json:"enable_custom_photo_url"`
	CustomPhotoURL       string      `json:"custom_photo_url"`
	LDAPServer           *LDAPServer `json:"ldap_server,omitempty"`
	Links                *UserLinks  `json:"links,omitempty"`
}

// AccountsResponse is the accounts collection: administrator users and
// administrator groups, as lightweight references.
type AccountsResponse struct {
	Users  []BasicRecord `json:"users"`
	Groups []BasicRecord `json:"groups"`
}

// AccountUser is an administrator account detail record.
type AccountUser struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Enabled     string `json:"enabled"`
	AccessLevel string `json:"access_level"`
	PrivilegeSet string `json:"privilege_set"`
}

// AccountGroup is an administrator group detail record, including its members.
type AccountGroup struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	AccessLevel string        `json:"access_level"`
	PrivilegeSet string       `json:"privilege_set"`
	Members     []BasicRecord `json:"members"`
}

// Computer is the lightweight computer record from the computers collection.
type Computer struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Managed         bool   `json:"managed"`
	Username        string `json:"username"`
	Model           string `json:"model"`
	Department      string `json:"department"`
	Building        string `json:"building"`
	MACAddress      string `json:"mac_address"`
	UDID            string `json:"udid"`
	SerialNumber    string `json:"serial_number"`
	ReportDateEpoch int64  `json:"report_date_epoch"`
	ReportDateUTC   string `json:"report_date_utc"`
}

// ComputerDetail is the rich per-computer record fetched by ID. Detail
// records are matched to list records by General.ID, not by UDID.
type ComputerDetail struct {
	General               ComputerGeneral           `json:"general"`
	Location              ComputerLocation          `json:"location"`
	Hardware              ComputerHardware          `json:"hardware"`
	ConfigurationProfiles []ConfigurationProfileRef `json:"configuration_profiles"`
	Software              ComputerSoftware          `json:"software"`
}

// ComputerGeneral is the general section of a computer detail record.
type ComputerGeneral struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	MACAddress            string `json:"mac_address"`
	AltMACAddress         string `json:"alt_mac_address"`
	UDID                  string `json:"udid"`
	SerialNumber          string `json:"serial_number"`
	Platform              string `json:"platform"`
	InitialEntryDateEpoch int64  `json:"initial_entry_date_epoch"`
	LastEnrolledDateEpoch int64  `json:"last_enrolled_date_epoch"`
	LastContactTimeEpoch  int64  `json:"last_contact_time_epoch"`
}

// ComputerLocation is the location section of a computer detail record.
type ComputerLocation struct {
	Username     string `json:"username"`
	RealName     string `json:"realname"`
	EmailAddress string `json:"email_address"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	Building     string `json:"building"`
}

// ComputerHardware is the hardware section of a computer detail record.
//
// Storage is deliberately untyped: depending on cardinality the API encodes
// it as a single object or an array, and each storage device nests its
// partitions with the same ambiguity. Use Sequence before iterating.
type ComputerHardware struct {
	Make             string `json:"make"`
	Model            string `json:"model"`
	ModelIdentifier  string `json:"model_identifier"`
	OSName           string `json:"os_name"`
	OSVersion        string `json:"os_version"`
	OSBuild          string `json:"os_build"`
	SIPStatus        string `json:"sip_status"`
	GatekeeperStatus string `json:"gatekeeper_status"`
	Storage          any    `json:"storage"`
}

// ConfigurationProfileRef links a computer detail record to a configuration
// profile. The same ID can appear more than once on a single computer.
type ConfigurationProfileRef struct {
	ID int `json:"id"`
}

// Application is an installed application reported in the software section.
type Application struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version"`
}

// ComputerSoftware is the software section of a computer detail record.
type ComputerSoftware struct {
	Applications []Application `json:"applications"`
}

// MobileDevice is a mobile device record from the mobiledevices collection.
type MobileDevice struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DeviceName      string `json:"device_name"`
	UDID            string `json:"udid"`
	SerialNumber    string `json:"serial_number"`
	PhoneNumber     string `json:"phone_number"`
	WifiMACAddress  string `json:"wifi_mac_address"`
	Managed         bool   `json:"managed"`
	Supervised      bool   `json:"supervised"`
	Model           string `json:"model"`
	ModelIdentifier string `json:"model_identifier"`
	ModelDisplay    string `json:"model_display"`
	Username        string `json:"username"`
}

// ConfigurationProfile is the lightweight macOS configuration profile record.
type ConfigurationProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ConfigurationProfileDetail is the per-profile record fetched by ID.
type ConfigurationProfileDetail struct {
	General ConfigurationProfileGeneral `json:"general"`
}

// ConfigurationProfileGeneral is the general section of a configuration
// profile detail record. Payloads is the embedded plist XML document that the
// profile package parses.
type ConfigurationProfileGeneral struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DistributionMethod string `json:"distribution_method"`
	UserRemovable      bool   `json:"user_removable"`
	Level              string `json:"level"`
	UUID               string `json:"uuid"`
	RedeployOnUpdate   string `json:"redeploy_on_update"`
	Payloads           string `json:"payloads"`
}

// Sequence coerces the vendor's singular-vs-array encoding into a uniform
// slice: arrays are returned as-is, a single object becomes a one-element
// slice, and nil becomes an empty slice. Every iteration over an ambiguous
// field must go through this helper rather than special-casing inline.
func Sequence(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{v}
	}
}
