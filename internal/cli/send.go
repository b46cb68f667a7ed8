package cli

import (
	"errors"
	"strings"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
	"github.com/vburojevic/deskbell/internal/presence"
)

// SendCmd sends a single command to the indicator
type SendCmd struct {
	Command string `arg:"" help:"go-away, yall-okay, notify, idle, or a raw #AARRGGBB color"`
	Port    string `short:"p" default:"${config_port}" help:"Serial port of the indicator (empty: dry run)"`
}

// Run executes the send command
func (c *SendCmd) Run(globals *Globals) error {
	sink := actuator.NewSink(actuator.Options{
		Port:     c.Port,
		BaudRate: globals.Config.Actuator.BaudRate,
		Timeout:  globals.Config.Actuator.Timeout,
	})
	return c.send(globals, sink)
}

func (c *SendCmd) send(globals *Globals, sink actuator.Sink) error {
	emitter := globals.Emitter()

	var failed error
	ctrl := presence.NewController(sink, newLogger(globals.Stderr, globals.Verbose),
		presence.WithObserver(func(r presence.CommandResult) {
			_ = emitter.WriteCommand(r.Command, r.State, r.Err)
			if r.Err != nil && failed == nil {
				failed = r.Err
			}
		}),
	)

	if action, err := domain.ParseAction(c.Command); err == nil {
		ctrl.Dispatch(action)
	} else {
		cmd, err := parseRawCommand(c.Command)
		if err != nil {
			return outputErrorCommon(globals, codeInvalidInput, err.Error(),
				"use go-away, yall-okay, notify, idle or a color such as #FF00FF00")
		}
		err = sink.Send(cmd)
		_ = emitter.WriteCommand(cmd, ctrl.Snapshot(), err)
		failed = err
	}

	if failed != nil {
		code := codeSendFailed
		if errors.Is(failed, actuator.ErrTimeout) {
			code = codeSendTimeout
		}
		return outputErrorCommon(globals, code, failed.Error(), "check that the indicator is plugged in and the port is right")
	}
	return nil
}

// parseRawCommand accepts "idle" plus the wire forms
func parseRawCommand(s string) (actuator.Command, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "idle") {
		return actuator.GoIdle(), nil
	}
	return actuator.ParseCommand(s)
}
