package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firewallPayload = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>PayloadDisplayName</key>
	<string>Security Baseline</string>
	<key>PayloadIdentifier</key>
	<string>com.example.baseline</string>
	<key>PayloadContent</key>
	<array>
		<dict>
			<key>PayloadType</key>
			<string>com.apple.security.firewall</string>
			<key>PayloadEnabled</key>
			<true/>
			<key>EnableFirewall</key>
			<true/>
			<key>EnableStealthMode</key>
			<false/>
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

func TestParse(t *testing.T) {
	parsed, err := Parse(firewallPayload)
	require.NoError(t, err)

	assert.Equal(t, "Security Baseline", parsed.DisplayName)
	assert.Equal(t, "com.example.baseline", parsed.Identifier)
	require.Len(t, parsed.Items, 2)

	// Document order is preserved.
	assert.Equal(t, PayloadTypeFirewall, parsed.Items[0].Type)
	assert.Equal(t, PayloadTypeScreensaver, parsed.Items[1].Type)
}

func TestParse_ItemLookupAndAccessors(t *testing.T) {
	parsed, err := Parse(firewallPayload)
	require.NoError(t, err)

	firewall := parsed.Item(PayloadTypeFirewall)
	require.NotNil(t, firewall)
	assert.True(t, firewall.Enabled)
	assert.True(t, firewall.Bool(PropertyEnableFirewall))
	assert.False(t, firewall.Bool(PropertyEnableStealthMode))
	assert.False(t, firewall.Bool("BlockAllIncoming"), "absent property reads as false")

	screensaver := parsed.Item(PayloadTypeScreensaver)
	require.NotNil(t, screensaver)
	assert.True(t, screensaver.Enabled, "integer 1 reads as enabled")

	idle, ok := screensaver.Number(PropertyLoginWindowIdleTime)
	require.True(t, ok)
	assert.Equal(t, float64(5), idle)

	_, ok = screensaver.Number("missing")
	assert.False(t, ok)

	assert.Nil(t, parsed.Item("com.apple.dock"))
}

func TestParse_MalformedPayload(t *testing.T) {
	_, err := Parse("<plist><dict><key>unterminated")
	require.Error(t, err)

	_, err = Parse("")
	require.Error(t, err)
}

func TestParse_NoPayloadContent(t *testing.T) {
	parsed, err := Parse(`<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>PayloadDisplayName</key><string>Empty</string></dict></plist>`)
	require.NoError(t, err)
	assert.Empty(t, parsed.Items)
	assert.Equal(t, "Empty", parsed.DisplayName)
}
