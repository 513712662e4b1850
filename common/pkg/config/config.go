/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

func SetValue(key, value string) {
	viper.Set(key, value)
}

func LoadConfig(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	return viper.ReadInConfig()
}

func getString(key, defaultValue string) string {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetString(key)
}

func getBool(key string, defaultValue bool) bool {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetBool(key)
}

func getInt(key string, defaultValue int) int {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetInt(key)
}

func getFloat(key string, defaultValue float64) float64 {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetFloat64(key)
}

func getStrings(key string) []string {
	val := viper.GetString(key)
	return removeBlank(strings.Split(val, ","))
}

func removeBlank(slice []string) []string {
	var result []string
	for _, val := range slice {
		if trim := strings.TrimSpace(val); trim != "" {
			result = append(result, trim)
		}
	}
	return result
}

func GetServerPort() int {
	return getInt(serverPort, 8001)
}

func GetAdminToken() string {
	return getString(serverAdminToken, "")
}

func GetLogFilePath() string {
	return getString(logFilePath, "")
}

func GetLogFileSizeMB() int {
	return getInt(logFileSizeMB, 100)
}

func GetDBHost() string {
	return getString(dbHost, "localhost")
}

func GetDBPort() int {
	return getInt(dbPort, 5432)
}

func GetDBName() string {
	return getString(dbName, "we_mp_rss")
}

func GetDBUser() string {
	return getString(dbUser, "postgres")
}

// GetDBPassword prefers the inline value and falls back to the password
// file so that deployments can mount the credential as a secret.
func GetDBPassword() string {
	if passwd := getString(dbPassword, ""); passwd != "" {
		return passwd
	}
	return readTrimmedFile(getString(dbPasswordFile, ""))
}

func GetDBSslMode() string {
	return getString(dbSslMode, "disable")
}

func GetDBMaxOpenConns() int {
	return getInt(dbMaxOpenConns, 100)
}

func GetDBMaxIdleConns() int {
	return getInt(dbMaxIdleConns, 10)
}

func GetDBMaxLifetimeSecond() int {
	return getInt(dbMaxLifetime, 600)
}

func GetDBMaxIdleTimeSecond() int {
	return getInt(dbMaxIdleTimeSecond, 60)
}

func GetDBConnectTimeoutSecond() int {
	return getInt(dbConnectTimeoutSecond, 10)
}

func GetDBRequestTimeoutSecond() int {
	return getInt(dbRequestTimeoutSecond, 20)
}

func IsCascadeEnable() bool {
	return getBool(cascadeEnable, false)
}

func GetCascadeNodeType() string {
	return getString(cascadeNodeType, "child")
}

func GetCascadeParentApiUrl() string {
	return getString(cascadeParentApiUrl, "")
}

func GetCascadeApiKey() string {
	return getString(cascadeApiKey, "")
}

func GetCascadeApiSecret() string {
	return getString(cascadeApiSecret, "")
}

func GetSyncIntervalSecond() int {
	return getInt(cascadeSyncIntervalSecond, 300)
}

func GetHeartbeatIntervalSecond() int {
	return getInt(cascadeHeartbeatIntervalSecond, 60)
}

func GetPollIntervalSecond() int {
	return getInt(cascadePollIntervalSecond, 30)
}

func GetFeedTimeoutSecond() int {
	return getInt(cascadeFeedTimeoutSecond, 120)
}

func GetHeartbeatWindowSecond() int {
	return getInt(cascadeHeartbeatWindowSecond, 180)
}

func GetReclaimAfterMinute() int {
	return getInt(cascadeReclaimAfterMinute, 30)
}

func GetDefaultMaxCapacity() int {
	return getInt(cascadeDefaultMaxCapacity, 10)
}

func GetMaxConcurrency() int {
	return getInt(cascadeMaxConcurrency, 1)
}

func GetSyncServiceUrl() string {
	return getString(cascadeSyncServiceUrl, "")
}

func IsNotificationEnable() bool {
	return getBool(notificationEnable, false)
}

func GetNotificationConfigFile() string {
	return getString(notificationConfigFile, "")
}

func readTrimmedFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(data), "\r\n")
}
