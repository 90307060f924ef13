package env

import (
	"os"
	"strconv"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Environment variable keys
const (
	// Server
	EnvListenAddr = "LISTEN_ADDR"

	// Databases
	EnvAuthDBPath    = "AUTH_DB_PATH"
	EnvCanteenDBPath = "CANTEEN_DB_PATH"

	// Sessions
	EnvSessionDuration = "SESSION_DURATION"
	EnvSecureCookies   = "SECURE_COOKIES"

	// Selection cutoff (hours, local time)
	EnvCutoffHour  = "CUTOFF_HOUR"
	EnvWarningHour = "WARNING_HOUR"

	// SMS gateway for reminders
	EnvSMSGatewayURL = "SMS_GATEWAY_URL"
	EnvSMSGatewayKey = "SMS_GATEWAY_KEY"
)

/*
Canteen is the meal-ordering portal backend for Karmic Solutions employees. Daily and weekly meal planning against the on-site canteen menu, with SMS reminders.
Canteen Copyright (C) 2026 Karmic Solutions
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
