package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/jamfgraph"
	"github.com/zero-day-ai/jamfgraph/convert"
	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
	"github.com/zero-day-ai/jamfgraph/state"
)

const baselinePayload = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>PayloadDisplayName</key>
	<string>Security Baseline</string>
	<key>PayloadContent</key>
	<array>
		<dict>
			<key>PayloadType</key>
			<string>com.apple.security.firewall</string>
			<key>PayloadEnabled</key>
			<true/>
			<key>EnableFirewall</key>
			<true/>
		</dict>
		<dict>
			<key>PayloadType</key>
			<string>com.apple.screensaver</string>
			<key>PayloadEnabled</key>
			<integer>1</integer>
			<key>loginWindowIdleTime</key>
			<integer>5</integer>
		</dict>
	</array>
</dict>
</plist>`

// fakeClient serves canned inventory. A fetch whose record is absent from
// the relevant map fails, which is how tests simulate vendor-side errors.
type fakeClient struct {
	accounts       *jamf.AccountsResponse
	admins         map[int]*jamf.AccountUser
	groups         map[int]*jamf.AccountGroup
	users          []jamf.User
	devices        []jamf.MobileDevice
	computers      []jamf.Computer
	details        map[int]*jamf.ComputerDetail
	profiles       []jamf.ConfigurationProfile
	profileDetails map[int]*jamf.ConfigurationProfileDetail

	// errs forces a whole-collection fetch to fail, keyed by method name.
	errs map[string]error
}

func (f *fakeClient) fail(method string) error {
	if f.errs == nil {
		return nil
	}
	return f.errs[method]
}

func (f *fakeClient) FetchAccounts(ctx context.Context) (*jamf.AccountsResponse, error) {
	if err := f.fail("FetchAccounts"); err != nil {
		return nil, err
	}
	return f.accounts, nil
}

func (f *fakeClient) FetchAccountUserByID(ctx context.Context, id int) (*jamf.AccountUser, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("account user %d not found", id)
}

func (f *fakeClient) FetchAccountGroupByID(ctx context.Context, id int) (*jamf.AccountGroup, error) {
	if g, ok := f.groups[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("account group %d not found", id)
}

func (f *fakeClient) FetchUsers(ctx context.Context) ([]jamf.User, error) {
	if err := f.fail("FetchUsers"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeClient) FetchMobileDevices(ctx context.Context) ([]jamf.MobileDevice, error) {
	if err := f.fail("FetchMobileDevices"); err != nil {
		return nil, err
	}
	return f.devices, nil
}

func (f *fakeClient) FetchComputers(ctx context.Context) ([]jamf.Computer, error) {
	if err := f.fail("FetchComputers"); err != nil {
		return nil, err
	}
	return f.computers, nil
}

func (f *fakeClient) FetchComputerByID(ctx context.Context, id int) (*jamf.ComputerDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, jamfgraph.NewNetworkError("jamf.FetchComputerByID",
		fmt.Errorf("%w: computer %d", jamfgraph.ErrFetchFailed, id))
}

func (f *fakeClient) FetchConfigurationProfiles(ctx context.Context) ([]jamf.ConfigurationProfile, error) {
	if err := f.fail("FetchConfigurationProfiles"); err != nil {
		return nil, err
	}
	return f.profiles, nil
}

func (f *fakeClient) FetchConfigurationProfileByID(ctx context.Context, id int) (*jamf.ConfigurationProfileDetail, error) {
	if d, ok := f.profileDetails[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("configuration profile %d not found", id)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fullInventory is a small but complete fleet: one device user linked to one
// computer, one admin reachable through one group, one mobile device, two
// configuration profiles (one with a malformed payload), and two computers
// of which one has no fetchable detail record.
func fullInventory() *fakeClient {
	return &fakeClient{
		users: []jamf.User{{
			ID:   5,
			Name: "amalia.enciso",
			Links: &jamf.UserLinks{
				Computers:     []jamf.BasicRecord{{ID: 11, Name: "mac-1"}},
				MobileDevices: []jamf.BasicRecord{{ID: 21, Name: "ipad-1"}},
			},
		}},
		accounts: &jamf.AccountsResponse{
			Users:  []jamf.BasicRecord{{ID: 1, Name: "root-admin"}},
			Groups: []jamf.BasicRecord{{ID: 2, Name: "Administrators"}},
		},
		admins: map[int]*jamf.AccountUser{
			1: {ID: 1, Name: "root-admin", Enabled: "Enabled", AccessLevel: "Full Access"},
		},
		groups: map[int]*jamf.AccountGroup{
			2: {ID: 2, Name: "Administrators", Members: []jamf.BasicRecord{{ID: 1, Name: "root-admin"}}},
		},
		devices: []jamf.MobileDevice{{ID: 21, Name: "ipad-1", Managed: true}},
		profiles: []jamf.ConfigurationProfile{
			{ID: 31, Name: "Security Baseline"},
			{ID: 32, Name: "Broken Profile"},
		},
		profileDetails: map[int]*jamf.ConfigurationProfileDetail{
			31: {General: jamf.ConfigurationProfileGeneral{ID: 31, Name: "Security Baseline", Payloads: baselinePayload}},
			32: {General: jamf.ConfigurationProfileGeneral{ID: 32, Name: "Broken Profile", Payloads: "not a plist"}},
		},
		computers: []jamf.Computer{
			{ID: 11, Name: "mac-1", Model: "MacBook Pro", Managed: true, Username: "amalia.enciso"},
			{ID: 12, Name: "mac-2", Model: "Mac mini"},
		},
		details: map[int]*jamf.ComputerDetail{
			11: {
				General: jamf.ComputerGeneral{ID: 11, Name: "mac-1", Platform: "Mac"},
				ConfigurationProfiles: []jamf.ConfigurationProfileRef{
					{ID: 31}, {ID: 31}, {ID: 32}, {ID: 99},
				},
				Software: jamf.ComputerSoftware{Applications: []jamf.Application{
					{Name: "Slack", Version: "4.39.95", Path: "/Applications/Slack.app"},
				}},
			},
		},
	}
}

func setupRun(t *testing.T, client jamf.Client) (*Context, *state.MemoryJobState) {
	t.Helper()
	mem := state.NewMemoryJobState()
	return &Context{
		Client:  client,
		State:   mem,
		Account: convert.Account{ID: "acme", Name: "Acme Corp"},
		Logger:  discardLogger(),
	}, mem
}

func entityKeys(mem *state.MemoryJobState) []string {
	var keys []string
	for _, e := range mem.Entities() {
		keys = append(keys, e.Key)
	}
	return keys
}

func relationshipKeys(mem *state.MemoryJobState) []string {
	var keys []string
	for _, r := range mem.Relationships() {
		keys = append(keys, r.Key)
	}
	return keys
}

func TestRunFullIngestion(t *testing.T) {
	ic, mem := setupRun(t, fullInventory())

	runner, err := NewRunner(DefaultSteps(), WithLogger(discardLogger()))
	require.NoError(t, err)

	err = runner.Run(context.Background(), ic)

	// One computer had no fetchable detail record, so the run reports the
	// aggregate detail failure while everything else still lands.
	require.Error(t, err)
	assert.Equal(t, jamfgraph.CodeComputerDetailFetch, jamfgraph.ErrorCode(err))

	keys := entityKeys(mem)
	assert.ElementsMatch(t, []string{
		"jamf_account_acme",
		"device_user_5",
		"jamf_user_1",
		"jamf_group_2",
		"mobile_device_21",
		"osx_configuration_profile_31",
		"osx_configuration_profile_32",
		"user_endpoint_11",
		"macos_app_Slack_4.39.95",
	}, keys)

	relKeys := relationshipKeys(mem)
	assert.ElementsMatch(t, []string{
		"jamf_account_acme_has_device_user_5",
		"device_user_5_has_user_endpoint_11",
		"jamf_account_acme_has_jamf_user_1",
		"jamf_account_acme_has_jamf_group_2",
		"jamf_group_2_has_jamf_user_1",
		"jamf_account_acme_manages_jamf_user_1",
		"jamf_account_acme_has_mobile_device_21",
		"jamf_account_acme_has_osx_configuration_profile_31",
		"jamf_account_acme_has_osx_configuration_profile_32",
		"jamf_account_acme_has_user_endpoint_11",
		"user_endpoint_11_uses_osx_configuration_profile_31",
		"user_endpoint_11_uses_osx_configuration_profile_32",
		"user_endpoint_11_installed_macos_app_Slack_4.39.95",
	}, relKeys)
}

func TestRunFullIngestion_SecurityPosture(t *testing.T) {
	ic, mem := setupRun(t, fullInventory())

	runner, err := NewRunner(DefaultSteps(), WithLogger(discardLogger()))
	require.NoError(t, err)
	_ = runner.Run(context.Background(), ic)

	computer, err := mem.FindEntity(context.Background(), "user_endpoint_11")
	require.NoError(t, err)

	// Posture collapsed from the one parseable profile, which arrived through
	// the job state handoff rather than in memory.
	assert.Equal(t, true, computer.Property("firewallEnabled"))
	assert.Equal(t, false, computer.Property("firewallStealthModeEnabled"))
	assert.Equal(t, true, computer.Property("screensaverLockEnabled"))
	assert.Equal(t, 5, computer.Property("screensaverIdleTime"))
	assert.Equal(t, "darwin", computer.Property("platform"))
	assert.Equal(t, "laptop", computer.Property("deviceType"))
}

func TestRunFullIngestion_FailedComputerDropped(t *testing.T) {
	ic, mem := setupRun(t, fullInventory())

	runner, err := NewRunner(DefaultSteps(), WithLogger(discardLogger()))
	require.NoError(t, err)
	_ = runner.Run(context.Background(), ic)

	_, err = mem.FindEntity(context.Background(), "user_endpoint_12")
	assert.ErrorIs(t, err, state.ErrEntityNotFound)
}

func TestExecuteComputers_MissingProfileMap(t *testing.T) {
	ic, _ := setupRun(t, fullInventory())

	// Seed only the account entity, skipping the configuration-profiles step.
	require.NoError(t, ic.AddEntity(context.Background(), convert.AccountEntity(ic.Account)))

	err := executeComputers(context.Background(), ic)
	require.Error(t, err)
	assert.Equal(t, jamfgraph.CodeConfigurationDetailsNotFound, jamfgraph.ErrorCode(err))
	assert.ErrorIs(t, err, jamfgraph.ErrMissingDependency)
}

func TestExecuteUsers_MissingAccountEntity(t *testing.T) {
	ic, _ := setupRun(t, fullInventory())

	err := executeUsers(context.Background(), ic)
	require.Error(t, err)
	assert.ErrorIs(t, err, jamfgraph.ErrMissingDependency)
}

func TestRunSkipsDependentsOfFailedSteps(t *testing.T) {
	client := fullInventory()
	client.errs = map[string]error{
		"FetchConfigurationProfiles": jamfgraph.NewNetworkError("jamf.FetchConfigurationProfiles", jamfgraph.ErrFetchFailed),
	}
	ic, mem := setupRun(t, client)

	runner, err := NewRunner(DefaultSteps(), WithLogger(discardLogger()))
	require.NoError(t, err)

	err = runner.Run(context.Background(), ic)
	require.Error(t, err)

	// Computers depends on configuration profiles and must not have run.
	_, err = mem.FindEntity(context.Background(), "user_endpoint_11")
	assert.ErrorIs(t, err, state.ErrEntityNotFound)

	// Unrelated steps still completed.
	found, err := mem.FindEntity(context.Background(), "mobile_device_21")
	require.NoError(t, err)
	assert.Equal(t, convert.MobileDeviceEntityType, found.Type)
}

func TestRunRelationshipsResolveToRealEntities(t *testing.T) {
	ic, mem := setupRun(t, fullInventory())

	runner, err := NewRunner(DefaultSteps(), WithLogger(discardLogger()))
	require.NoError(t, err)
	_ = runner.Run(context.Background(), ic)

	// USES edges only exist for profile entities that were actually created;
	// the reference to profile 99 was dropped.
	for _, r := range mem.Relationships() {
		if r.Class != graph.ClassUses {
			continue
		}
		_, err := mem.FindEntity(context.Background(), r.ToKey)
		assert.NoError(t, err, "dangling USES edge %s", r.Key)
	}
}
