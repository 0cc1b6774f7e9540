//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"github.com/e-gun/HipparchiaTextLab/internal/lnch"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/pkg/profile"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	// go tool pprof --pdf ./HipparchiaTextLab htl_output/profile/cpu.pprof > profile.pdf
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := lnch.NewRootCommand(profiler)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		lnch.Msg.EC(err, root.Name())
		lnch.Msg.ExitOrHang(1)
	}
}

// profiler - start a cpu or memory profile if one was asked for; cpu wins if both were
func profiler(cfg *str.CurrentConfiguration) func() {
	const (
		PDIR = "profile"
	)

	var p interface{ Stop() }
	dir := profile.ProfilePath(filepath.Join(cfg.OutDir, PDIR))

	switch {
	case cfg.ProfileCPU:
		p = profile.Start(profile.CPUProfile, dir, profile.Quiet, profile.NoShutdownHook)
	case cfg.ProfileMEM:
		p = profile.Start(profile.MemProfile, dir, profile.Quiet, profile.NoShutdownHook)
	default:
		return nil
	}
	return p.Stop
}
