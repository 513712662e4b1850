/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"

	gateway "github.com/YourCFP/we-mp-rss/gateway/pkg/server"
)

func main() {
	s, err := gateway.NewServer()
	if err != nil {
		fmt.Println("failed to new gateway server, err: ", err.Error())
		return
	}
	s.Start()
}
