package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *S3CredentialStore {
	key := []byte("0123456789abcdef0123456789abcdef") // 32 bytes
	return NewS3CredentialStore(nil, "test-bucket", key)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	store := testStore()

	sealed, err := store.encrypt([]byte(`{"email":"me@example.com","api_token":"secret"}`))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "secret")

	plaintext, err := store.decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"email":"me@example.com","api_token":"secret"}`, string(plaintext))
}

func TestEncrypt_ProducesFreshNonces(t *testing.T) {
	store := testStore()

	first, err := store.encrypt([]byte("same input"))
	require.NoError(t, err)
	second, err := store.encrypt([]byte("same input"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecrypt_RejectsShortCiphertext(t *testing.T) {
	store := testStore()

	_, err := store.decrypt(base64.StdEncoding.EncodeToString([]byte("tiny")))
	assert.ErrorContains(t, err, "ciphertext too short")
}

func TestDecrypt_RejectsTamperedCiphertext(t *testing.T) {
	store := testStore()

	sealed, err := store.encrypt([]byte("payload"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = store.decrypt(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}

func TestObjectKeyLayout(t *testing.T) {
	store := testStore()
	assert.Equal(t, "credentials/U123.json", store.objectKey("U123"))
}
