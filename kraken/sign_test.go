package kraken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_Sign(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		path   string
		nonce  string
		body   string
		want   string
	}{
		{
			name:   "exchange documentation example",
			secret: "kQH5HW/8p1uGOVjbgWA7FunAmGO8lsSUXNsu3eow76sz84Q18fWxnyRzBHCd3pd5nE9qa99HAZtuZuj6F1huXg==",
			path:   "/0/private/AddOrder",
			nonce:  "1616492376594",
			body:   "nonce=1616492376594&ordertype=limit&pair=XBTUSD&price=37500&type=buy&volume=1.25",
			want:   "4/dpxb3iT4tp/ZCVEwSnEsLxx0bqyhLpdfOpc6fn7OR8+UClSV5n9E6aSS8MPtnRfp32bAb0nmbRn6H8ndwLUQ==",
		},
		{
			name:   "balance",
			secret: "a3Jha2VuLXRlc3Qtc2VjcmV0", // "kraken-test-secret"
			path:   "/0/private/Balance",
			nonce:  "1700000000000042",
			body:   "nonce=1700000000000042&foo=bar",
			want:   "fak4R7aRxe+M7+2nS0mYqBrCOs2xxpVLN9EO+CmyxcaaKbXntH1DijfFWOkaPpQShZNo4VIyRHyVLoRx8VwJEw==",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSigner(tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Sign(tt.path, tt.nonce, tt.body))
			// same inputs, same signature
			assert.Equal(t, tt.want, s.Sign(tt.path, tt.nonce, tt.body))
		})
	}
}

func TestSigner_SignFromParams(t *testing.T) {
	s, err := NewSigner("a3Jha2VuLXRlc3Qtc2VjcmV0")
	require.NoError(t, err)
	p := NewParams("nonce", "1700000000000042", "foo", "bar")
	got := s.Sign(PrivatePath(0, "Balance"), p.Get("nonce"), p.Encode())
	assert.Equal(t, "fak4R7aRxe+M7+2nS0mYqBrCOs2xxpVLN9EO+CmyxcaaKbXntH1DijfFWOkaPpQShZNo4VIyRHyVLoRx8VwJEw==", got)
}

func TestSigner_SignDependsOnEveryInput(t *testing.T) {
	s, err := NewSigner("a3Jha2VuLXRlc3Qtc2VjcmV0")
	require.NoError(t, err)
	base := s.Sign("/0/private/Balance", "1", "nonce=1")
	assert.NotEqual(t, base, s.Sign("/0/private/Ledgers", "1", "nonce=1"))
	assert.NotEqual(t, base, s.Sign("/0/private/Balance", "2", "nonce=1"))
	assert.NotEqual(t, base, s.Sign("/0/private/Balance", "1", "nonce=1&a=b"))
}

func TestNewSigner_BadSecret(t *testing.T) {
	for _, secret := range []string{"not base64!", "YWJ", ""} {
		_, err := NewSigner(secret)
		require.Error(t, err, secret)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/0/private/Balance", PrivatePath(0, "Balance"))
	assert.Equal(t, "/0/public/Time", PublicPath(0, "Time"))
}
