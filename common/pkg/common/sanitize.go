/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package common

import "strings"

// Sanitize strips the whitespace and quotes that hand-edited config files
// tend to carry around credentials and urls.
func Sanitize(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
