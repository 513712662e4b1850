/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"

	"github.com/YourCFP/we-mp-rss/agent/pkg/daemon"
)

func main() {
	d, err := daemon.NewDaemon()
	if err != nil {
		fmt.Println("failed to new agent daemon, err: ", err.Error())
		return
	}
	d.Start()
}
