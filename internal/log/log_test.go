// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{
		W:   &buf,
		Now: func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) },
	}
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	logger.Debug("querycache hit")
	logger.WithError(errors.New("boom")).WithField("key", "[managed-restaurant]").Warn("rolled back")

	assert.Equal(t,
		"2026-03-04 05:06:07 D querycache hit\n"+
			"2026-03-04 05:06:07 W rolled back error=boom key=[managed-restaurant]\n",
		buf.String())
}

func TestInitLogger(t *testing.T) {
	t.Setenv("STORECTL_LOG", "debug")
	InitLogger()
	l, ok := log.Log.(*log.Logger)
	require.True(t, ok)
	assert.Equal(t, log.DebugLevel, l.Level)

	t.Setenv("STORECTL_LOG", "chatty")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, l.Level)

	t.Setenv("STORECTL_LOG", "")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, l.Level)
}
