package main

import (
	"context"
	"io"

	"tomato/internal/notify"
	"tomato/internal/ui/controls"
	"tomato/internal/ui/term"
)

func runTerm(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := loadConfig(true, nil)
	if err != nil {
		return err
	}

	keeper, scheduler := newTimer(cfg, notify.WriterSender{Out: out, Bell: true})
	defer scheduler.Close()
	defer keeper.Close()

	ui := term.New(in, out, controls.New(keeper))
	events := keeper.Subscribe(16)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		ui.Watch(events)
	}()

	err = ui.Run(ctx)
	keeper.Close()
	<-watchDone
	return err
}
