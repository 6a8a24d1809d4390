/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Paintersrp/tome/internal/state"
	"github.com/Paintersrp/tome/pkg/cmd/root"
)

func Execute() {
	s, err := state.NewState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	rootCmd, err := root.NewCmdRoot(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		_ = s.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	execErr := rootCmd.ExecuteContext(ctx)
	stop()

	if err := s.Close(); err != nil {
		s.Logger.Warn("shutdown", "err", err)
	}
	if execErr != nil {
		os.Exit(1)
	}
}
