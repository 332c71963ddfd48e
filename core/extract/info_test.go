package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo_Fixture(t *testing.T) {
	doc := parseDoc(t, invoicePage)

	info, err := Info(doc)
	require.NoError(t, err)

	assert.Equal(t, fixtureAccessKey, info.AccessKey)
	assert.Equal(t, "123456", info.Number)
	assert.Equal(t, "1", info.Series)
	assert.Equal(t, "313230112345678", info.AuthorizationProtocol)

	brt := time.FixedZone("", -3*60*60)
	assert.True(t, info.IssuedAt.Equal(time.Date(2023, 7, 15, 10, 30, 45, 0, brt)),
		"issued at %s", info.IssuedAt)
	assert.True(t, info.AuthorizedAt.Equal(time.Date(2023, 7, 15, 10, 30, 46, 0, brt)),
		"authorized at %s", info.AuthorizedAt)
}

func TestInfo_AccessKeySurvivesListFailure(t *testing.T) {
	// The general-information list is truncated, but the access key sits in
	// its own collapsible and must still come back.
	doc := parseDoc(t, `<html><body><div id="infos">
		<ul class="ui-listview"><li><strong>Número:</strong> 123456</li></ul>
		<span class="chave">3123 0306 0572 2300 0171 6500 1000 0002 2619 0024 2849</span>
	</div></body></html>`)

	info, err := Info(doc)
	require.Error(t, err)

	assert.Equal(t, fixtureAccessKey, info.AccessKey)
	assert.Empty(t, info.Number, "list fields are all-or-nothing")
	assert.True(t, info.IssuedAt.IsZero())
}

func TestInfo_BadEmissionStamp(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="infos">
		<span class="chave">3123 0306 0572 2300 0171 6500 1000 0002 2619 0024 2849</span>
		<ul class="ui-listview"><li>
			<strong>Número:</strong> 123456
			<br><strong>Série:</strong> 1
			<br><strong>Emissão:</strong> not a date
			<br><strong>Protocolo de Autorização:</strong> 313230112345678  15/07/2023 às 10:30:46-03:00
		</li></ul>
	</div></body></html>`)

	info, err := Info(doc)
	require.Error(t, err)
	assert.Equal(t, fixtureAccessKey, info.AccessKey)
	assert.Empty(t, info.AuthorizationProtocol)
}

func TestParseStamp(t *testing.T) {
	stamp, err := parseStamp(" 15/07/2023 10:30:45-03:00\n ignored tail")
	require.NoError(t, err)

	assert.True(t, stamp.Equal(time.Date(2023, 7, 15, 10, 30, 45, 0, time.FixedZone("", -3*60*60))))
	_, offset := stamp.Zone()
	assert.Equal(t, -3*60*60, offset)
}
