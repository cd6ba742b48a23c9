package client

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type testLogger struct {
	lock  sync.Mutex
	lines []string
}

func (l *testLogger) log(level, format string, args ...any) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *testLogger) Info(format string, args ...any)    { l.log("INFO", format, args...) }
func (l *testLogger) Warning(format string, args ...any) { l.log("WARNING", format, args...) }
func (l *testLogger) Error(format string, args ...any)   { l.log("ERROR", format, args...) }
func (l *testLogger) Debug(format string, args ...any)   { l.log("DEBUG", format, args...) }
func (l *testLogger) Dump(_ []byte, format string, args ...any) {
	l.log("DUMP", format, args...)
}

func (l *testLogger) contains(s string) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

const (
	readyPayload = `{"op":0,"t":"READY","s":0,"d":{"user":{"id":"SELF"},"guilds":[{"id":"G","unavailable":true}]}}`

	guildCreatePayload = `{"op":0,"t":"GUILD_CREATE","s":1,"d":{
		"id":"G","name":"guild","owner_id":"1",
		"emojis":[{"id":"123","name":"fire","roles":["R1"],"require_colons":true,"available":true}],
		"channels":[
			{"id":"C","name":"general","type":0,"position":1},
			{"id":"V","name":"voice","type":2,"position":0}
		]}}`
)

func dispatch(t string, seq int, d string) []byte {
	return []byte(fmt.Sprintf(`{"op":0,"t":%q,"s":%d,"d":%s}`, t, seq, d))
}

func messageCreate(messageID, channelID, reactions string) []byte {
	if reactions == "" {
		reactions = "[]"
	}
	return dispatch("MESSAGE_CREATE", 2, fmt.Sprintf(`{
		"id":%q,"channel_id":%q,"guild_id":"G","author":{"id":"U"},
		"content":"hello","timestamp":"2021-01-01T00:00:00.000000+00:00",
		"reactions":%s}`, messageID, channelID, reactions))
}

// newTestClient returns a client whose registry holds guild G with text
// channel C and voice channel V.
func newTestClient(t *testing.T) (*Client, *testLogger) {
	t.Helper()
	logger := &testLogger{}
	c := NewClient()
	c.SetLogger(logger)
	require.NoError(t, c.HandleDispatch([]byte(readyPayload)))
	require.NoError(t, c.HandleDispatch([]byte(guildCreatePayload)))
	return c, logger
}
