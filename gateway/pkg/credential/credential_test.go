/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package credential

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	mock_client "github.com/YourCFP/we-mp-rss/common/pkg/database/client/mock"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

func TestGenerateKeys(t *testing.T) {
	accessKey, err := GenerateAccessKey()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(accessKey, AccessKeyPrefix))
	assert.Equal(t, 34, len(accessKey))

	secretKey, err := GenerateSecretKey()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(secretKey, SecretKeyPrefix))
	assert.Equal(t, 34, len(secretKey))

	another, err := GenerateAccessKey()
	assert.NoError(t, err)
	assert.NotEqual(t, accessKey, another)

	// URL-safe alphabet only; keys end up in headers and config files.
	body := strings.TrimPrefix(accessKey, AccessKeyPrefix)
	assert.NotContains(t, body, "+")
	assert.NotContains(t, body, "/")
	assert.NotContains(t, body, "=")
}


func TestHashSecret(t *testing.T) {
	assert.Equal(t,
		"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		HashSecret("test"))
	assert.Equal(t, 64, len(HashSecret("")))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "CN****wxyz", MaskKey("CNabcdefwxyz"))
	assert.Equal(t, "****", MaskKey("short"))
}

func TestIssue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_client.NewMockInterface(ctrl)
	v := &Verifier{dbClient: mockDB}

	mockDB.EXPECT().GetNodeById(gomock.Any(), "node-1").Return(&dbclient.CascadeNode{
		Id:       "node-1",
		NodeType: dbclient.NodeTypeWorker,
	}, nil)

	var storedKey, storedHash string
	mockDB.EXPECT().UpdateNodeCredentials(gomock.Any(), "node-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, apiKey, secretHash string) error {
			storedKey = apiKey
			storedHash = secretHash
			return nil
		})

	accessKey, secretKey, err := v.Issue(context.Background(), "node-1")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(accessKey, AccessKeyPrefix))
	assert.True(t, strings.HasPrefix(secretKey, SecretKeyPrefix))
	assert.Equal(t, accessKey, storedKey)
	// Only the digest reaches the store, never the raw secret.
	assert.Equal(t, HashSecret(secretKey), storedHash)
	assert.NotEqual(t, secretKey, storedHash)
}

func TestIssueRejectsCoordinator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_client.NewMockInterface(ctrl)
	v := &Verifier{dbClient: mockDB}

	mockDB.EXPECT().GetNodeById(gomock.Any(), "node-0").Return(&dbclient.CascadeNode{
		Id:       "node-0",
		NodeType: dbclient.NodeTypeCoordinator,
	}, nil)

	_, _, err := v.Issue(context.Background(), "node-0")
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestVerify(t *testing.T) {
	accessKey := "CNvalid-access-key-for-tests-0000"
	secretKey := "CSvalid-secret-key-for-tests-0000"

	newNode := func(active bool) *dbclient.CascadeNode {
		return &dbclient.CascadeNode{
			Id:            "node-1",
			NodeType:      dbclient.NodeTypeWorker,
			ApiKey:        sql.NullString{String: accessKey, Valid: true},
			ApiSecretHash: sql.NullString{String: HashSecret(secretKey), Valid: true},
			IsActive:      active,
		}
	}

	t.Run("success touches heartbeat", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(newNode(true), nil)
		mockDB.EXPECT().UpdateNodeHeartbeat(gomock.Any(), "node-1").Return(nil)

		node, err := v.Verify(context.Background(), accessKey, secretKey)
		assert.NoError(t, err)
		assert.Equal(t, "node-1", node.Id)
	})

	t.Run("quoted credentials are sanitized before lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(newNode(true), nil)
		mockDB.EXPECT().UpdateNodeHeartbeat(gomock.Any(), "node-1").Return(nil)

		node, err := v.Verify(context.Background(), `"`+accessKey+`"`, " "+secretKey+"\n")
		assert.NoError(t, err)
		assert.Equal(t, "node-1", node.Id)
	})

	t.Run("wrong secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(newNode(true), nil)

		_, err := v.Verify(context.Background(), accessKey, "CSwrong-secret")
		assert.True(t, commonerrors.IsUnauthorized(err))
	})

	t.Run("unknown access key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), "CNunknown").
			Return(nil, commonerrors.NewNotFound("cascade node not found"))

		_, err := v.Verify(context.Background(), "CNunknown", secretKey)
		assert.True(t, commonerrors.IsUnauthorized(err))
	})

	t.Run("inactive node", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(newNode(false), nil)

		_, err := v.Verify(context.Background(), accessKey, secretKey)
		assert.True(t, commonerrors.IsUnauthorized(err))
	})

	t.Run("empty credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		_, err := v.Verify(context.Background(), "", "")
		assert.True(t, commonerrors.IsUnauthorized(err))
	})

	// The three failure modes above must be indistinguishable to the caller.
	t.Run("uniform failure message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_client.NewMockInterface(ctrl)
		v := &Verifier{dbClient: mockDB}

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(newNode(false), nil)
		_, errInactive := v.Verify(context.Background(), accessKey, secretKey)

		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(newNode(true), nil)
		_, errSecret := v.Verify(context.Background(), accessKey, "CSwrong-secret")

		// The envelope carries the message, so that is what must match.
		assert.Equal(t, commonerrors.GetMessage(errInactive), commonerrors.GetMessage(errSecret))
		assert.Equal(t, commonerrors.GetMessage(errSecret), "invalid node credentials")
	})
}
