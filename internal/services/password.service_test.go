package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	service := NewPasswordService(bcrypt.MinCost)

	hash, err := service.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, service.Verify("correct horse battery staple", hash))
	assert.Error(t, service.Verify("wrong password", hash))
}

func TestPasswordService_VerifyMalformedHash(t *testing.T) {
	service := NewPasswordService(bcrypt.MinCost)

	err := service.Verify("anything", "not-a-bcrypt-hash")
	require.Error(t, err)

	// Same message as a wrong password, so callers cannot tell them apart
	wrongHash, hashErr := service.Hash("other")
	require.NoError(t, hashErr)
	wrongErr := service.Verify("anything", wrongHash)
	require.Error(t, wrongErr)
	assert.Equal(t, wrongErr.Error(), err.Error())
}

func TestNewPasswordService_ClampsInvalidCost(t *testing.T) {
	service := NewPasswordService(1000)

	hash, err := service.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
