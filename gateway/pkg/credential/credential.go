/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package credential

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sync"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

const (
	// AccessKeyPrefix marks access keys (CN = Cascade Node).
	AccessKeyPrefix = "CN"
	// SecretKeyPrefix marks secret keys (CS = Cascade Secret).
	SecretKeyPrefix = "CS"
	// keyRandomBytes is sized so the base64 body is exactly 32 characters.
	keyRandomBytes = 24
)

var (
	verifierOnce     sync.Once
	verifierInstance *Verifier
)

// Verifier authenticates worker credentials against the node store.
type Verifier struct {
	dbClient dbclient.Interface
}

// NewVerifier creates and returns the singleton Verifier.
func NewVerifier(dbClient dbclient.Interface) *Verifier {
	verifierOnce.Do(func() {
		verifierInstance = &Verifier{
			dbClient: dbClient,
		}
	})
	return verifierInstance
}

// VerifierInstance returns the singleton Verifier, nil before NewVerifier.
func VerifierInstance() *Verifier {
	return verifierInstance
}

func generateKey(prefix string) (string, error) {
	bytes := make([]byte, keyRandomBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	// URL-safe base64 without padding.
	return prefix + base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateAccessKey generates a new access key.
func GenerateAccessKey() (string, error) {
	return generateKey(AccessKeyPrefix)
}

// GenerateSecretKey generates a new secret key.
func GenerateSecretKey() (string, error) {
	return generateKey(SecretKeyPrefix)
}

// HashSecret computes the SHA-256 digest of a secret key for storage.
// The database only ever holds the digest, never the raw secret.
func HashSecret(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])
}

// MaskKey returns a loggable form of a key: prefix plus the last 4 characters.
func MaskKey(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}

// Issue generates a fresh AK/SK pair for a worker node and persists the secret
// hash. The raw secret is returned exactly once and never stored; re-issuing
// replaces the previous pair.
func (v *Verifier) Issue(ctx context.Context, nodeId string) (string, string, error) {
	node, err := v.dbClient.GetNodeById(ctx, nodeId)
	if err != nil {
		return "", "", err
	}
	if node.NodeType != dbclient.NodeTypeWorker {
		return "", "", commonerrors.NewBadRequest("only worker nodes hold credentials")
	}
	accessKey, err := GenerateAccessKey()
	if err != nil {
		return "", "", commonerrors.NewInternalError(err.Error())
	}
	secretKey, err := GenerateSecretKey()
	if err != nil {
		return "", "", commonerrors.NewInternalError(err.Error())
	}
	if err = v.dbClient.UpdateNodeCredentials(ctx, nodeId, accessKey, HashSecret(secretKey)); err != nil {
		return "", "", err
	}
	klog.Infof("issued credentials for node %s (%s)", node.Id, MaskKey(accessKey))
	return accessKey, secretKey, nil
}

// Verify authenticates an AK/SK pair and returns the matching node. Lookup is
// by access key; the secret digest is compared in constant time; inactive
// nodes are rejected. Every failure returns the same error so callers cannot
// tell which check failed. A successful verify touches the node heartbeat:
// any authenticated call is proof of liveness.
func (v *Verifier) Verify(ctx context.Context, accessKey, secretKey string) (*dbclient.CascadeNode, error) {
	accessKey = common.Sanitize(accessKey)
	secretKey = common.Sanitize(secretKey)
	if accessKey == "" || secretKey == "" {
		return nil, errInvalidCredentials()
	}
	node, err := v.dbClient.GetNodeByApiKey(ctx, accessKey)
	if err != nil {
		if !commonerrors.IsNotFound(err) {
			klog.ErrorS(err, "failed to look up node by access key", "accessKey", MaskKey(accessKey))
		}
		return nil, errInvalidCredentials()
	}
	digest := HashSecret(secretKey)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(node.ApiSecretHash.String)) != 1 {
		return nil, errInvalidCredentials()
	}
	if !node.IsActive {
		return nil, errInvalidCredentials()
	}
	// Best effort; a broken heartbeat write must not turn into a 401.
	if err = v.dbClient.UpdateNodeHeartbeat(ctx, node.Id); err != nil {
		klog.ErrorS(err, "failed to touch node heartbeat", "node", node.Id)
	}
	return node, nil
}

func errInvalidCredentials() error {
	return commonerrors.NewUnauthorized("invalid node credentials")
}
