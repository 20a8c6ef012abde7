package storage

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Credentials are one user's Jira credentials.
type Credentials struct {
	Email    string `json:"email"`
	APIToken string `json:"api_token"`
}

// CredentialStore persists per-user Jira credentials.
type CredentialStore interface {
	Get(ctx context.Context, userID string) (Credentials, error)
	Put(ctx context.Context, userID string, creds Credentials) error
}

// S3CredentialStore implements CredentialStore on an S3 bucket. The
// stored document is AES-256-GCM encrypted so the bucket never holds
// plaintext tokens.
type S3CredentialStore struct {
	client     *s3.Client
	bucketName string
	encryptKey []byte // 32-byte key for AES-256
}

// NewS3CredentialStore creates a new S3CredentialStore instance
func NewS3CredentialStore(client *s3.Client, bucketName string, encryptKey []byte) *S3CredentialStore {
	return &S3CredentialStore{
		client:     client,
		bucketName: bucketName,
		encryptKey: encryptKey,
	}
}

// Get retrieves and decrypts the credentials for the given user ID.
func (s *S3CredentialStore) Get(ctx context.Context, userID string) (Credentials, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(userID)),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to get credentials from S3: %w", err)
	}
	defer result.Body.Close()

	sealed, err := io.ReadAll(result.Body)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials object: %w", err)
	}

	plaintext, err := s.decrypt(string(sealed))
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return creds, nil
}

// Put encrypts and stores the credentials for the given user ID.
func (s *S3CredentialStore) Put(ctx context.Context, userID string, creds Credentials) error {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	sealed, err := s.encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(userID)),
		Body:   bytes.NewReader([]byte(sealed)),
	})
	if err != nil {
		return fmt.Errorf("failed to store credentials in S3: %w", err)
	}
	return nil
}

// encrypt seals the document with AES-GCM, nonce prepended, base64
// encoded.
func (s *S3CredentialStore) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return "", err
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := aesGCM.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt reverses encrypt.
func (s *S3CredentialStore) decrypt(sealed string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return nil, err
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aesGCM.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce := ciphertext[:aesGCM.NonceSize()]
	ciphertext = ciphertext[aesGCM.NonceSize():]
	return aesGCM.Open(nil, nonce, ciphertext, nil)
}

// objectKey generates the S3 key for a user's credentials.
func (s *S3CredentialStore) objectKey(userID string) string {
	return fmt.Sprintf("credentials/%s.json", userID)
}
