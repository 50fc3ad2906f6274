package jamf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zero-day-ai/jamfgraph"
)

// Client defines the interface for fetching raw inventory from a Jamf Pro
// server. All methods return decoded records; any transport or decode failure
// surfaces as an error on the call.
type Client interface {
	// FetchAccounts returns the administrator users and groups.
	FetchAccounts(ctx context.Context) (*AccountsResponse, error)

	// FetchAccountUserByID returns one administrator user detail record.
	FetchAccountUserByID(ctx context.Context, id int) (*AccountUser, error)

	// FetchAccountGroupByID returns one administrator group detail record.
	FetchAccountGroupByID(ctx context.Context, id int) (*AccountGroup, error)

	// FetchUsers returns all device user records.
	FetchUsers(ctx context.Context) ([]User, error)

	// FetchMobileDevices returns all mobile device records.
	FetchMobileDevices(ctx context.Context) ([]MobileDevice, error)

	// FetchComputers returns the lightweight computer records.
	FetchComputers(ctx context.Context) ([]Computer, error)

	// FetchComputerByID returns the detail record for one computer.
	FetchComputerByID(ctx context.Context, id int) (*ComputerDetail, error)

	// FetchConfigurationProfiles returns the macOS configuration profile records.
	FetchConfigurationProfiles(ctx context.Context) ([]ConfigurationProfile, error)

	// FetchConfigurationProfileByID returns the detail record for one profile,
	// including its embedded plist payload.
	FetchConfigurationProfileByID(ctx context.Context, id int) (*ConfigurationProfileDetail, error)
}

// Options configures the REST client.
type Options struct {
	// Host is the Jamf Pro server base URL (e.g., "https://example.jamfcloud.com").
	Host string

	// Username and Password authenticate against the classic API.
	Username string
	Password string

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration

	// HTTPClient overrides the transport, primarily for tests.
	HTTPClient *http.Client
}

// RESTClient implements Client over the Jamf classic JSON API.
type RESTClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// NewRESTClient creates a REST client with the given options.
func NewRESTClient(opts Options) (*RESTClient, error) {
	if opts.Host == "" {
		return nil, jamfgraph.NewConfigurationError("jamf.NewRESTClient",
			fmt.Errorf("%w: host is required", jamfgraph.ErrInvalidConfig))
	}
	if _, err := url.Parse(opts.Host); err != nil {
		return nil, jamfgraph.NewConfigurationError("jamf.NewRESTClient",
			fmt.Errorf("invalid host %q: %w", opts.Host, err))
	}

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &RESTClient{
		baseURL:  strings.TrimRight(opts.Host, "/"),
		username: opts.Username,
		password: opts.Password,
		client:   client,
	}, nil
}

// FetchAccounts returns the administrator users and groups.
func (c *RESTClient) FetchAccounts(ctx context.Context) (*AccountsResponse, error) {
	var wrapper struct {
		Accounts AccountsResponse `json:"accounts"`
	}
	if err := c.get(ctx, "jamf.FetchAccounts", "/JSSResource/accounts", &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Accounts, nil
}

// FetchAccountUserByID returns one administrator user detail record.
func (c *RESTClient) FetchAccountUserByID(ctx context.Context, id int) (*AccountUser, error) {
	var wrapper struct {
		Account AccountUser `json:"account"`
	}
	path := fmt.Sprintf("/JSSResource/accounts/userid/%d", id)
	if err := c.get(ctx, "jamf.FetchAccountUserByID", path, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Account, nil
}

// FetchAccountGroupByID returns one administrator group detail record.
func (c *RESTClient) FetchAccountGroupByID(ctx context.Context, id int) (*AccountGroup, error) {
	var wrapper struct {
		Group AccountGroup `json:"group"`
	}
	path := fmt.Sprintf("/JSSResource/accounts/groupid/%d", id)
	if err := c.get(ctx, "jamf.FetchAccountGroupByID", path, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Group, nil
}

// FetchUsers returns all device user records.
func (c *RESTClient) FetchUsers(ctx context.Context) ([]User, error) {
	var wrapper struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, "jamf.FetchUsers", "/JSSResource/users", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Users, nil
}

// FetchMobileDevices returns all mobile device records.
func (c *RESTClient) FetchMobileDevices(ctx context.Context) ([]MobileDevice, error) {
	var wrapper struct {
		MobileDevices []MobileDevice `json:"mobile_devices"`
	}
	if err := c.get(ctx, "jamf.FetchMobileDevices", "/JSSResource/mobiledevices", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.MobileDevices, nil
}

// FetchComputers returns the lightweight computer records.
func (c *RESTClient) FetchComputers(ctx context.Context) ([]Computer, error) {
	var wrapper struct {
		Computers []Computer `json:"computers"`
	}
	if err := c.get(ctx, "jamf.FetchComputers", "/JSSResource/computers", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Computers, nil
}

// FetchComputerByID returns the detail record for one computer.
func (c *RESTClient) FetchComputerByID(ctx context.Context, id int) (*ComputerDetail, error) {
	var wrapper struct {
		Computer ComputerDetail `json:"computer"`
	}
	path := fmt.Sprintf("/JSSResource/computers/id/%d", id)
	if err := c.get(ctx, "jamf.FetchComputerByID", path, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Computer, nil
}

// FetchConfigurationProfiles returns the macOS configuration profile records.
func (c *RESTClient) FetchConfigurationProfiles(ctx context.Context) ([]ConfigurationProfile, error) {
	var wrapper struct {
		Profiles []ConfigurationProfile `json:"os_x_configuration_profiles"`
	}
	if err := c.get(ctx, "jamf.FetchConfigurationProfiles", "/JSSResource/osxconfigurationprofiles", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Profiles, nil
}

// FetchConfigurationProfileByID returns the detail record for one profile.
func (c *RESTClient) FetchConfigurationProfileByID(ctx context.Context, id int) (*ConfigurationProfileDetail, error) {
	var wrapper struct {
		Profile ConfigurationProfileDetail `json:"os_x_configuration_profile"`
	}
	path := fmt.Sprintf("/JSSResource/osxconfigurationprofiles/id/%d", id)
	if err := c.get(ctx, "jamf.FetchConfigurationProfileByID", path, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Profile, nil
}

// get performs an authenticated GET and decodes the JSON response into target.
func (c *RESTClient) get(ctx context.Context, op, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return jamfgraph.NewInternalError(op, fmt.Errorf("failed to build request: %w", err))
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return jamfgraph.NewNetworkError(op, fmt.Errorf("%w: %v", jamfgraph.ErrFetchFailed, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return jamfgraph.NewNetworkError(op,
			fmt.Errorf("%w: unexpected status %d for %s", jamfgraph.ErrFetchFailed, resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return jamfgraph.NewNetworkError(op,
			fmt.Errorf("%w: failed to decode response for %s: %v", jamfgraph.ErrFetchFailed, path, err))
	}

	return nil
}
