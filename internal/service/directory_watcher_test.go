package service

import (
	"testing"
	"time"
)

func TestWatcherCooldownSuppressesRepeatedEvents(t *testing.T) {
	s := NewDirectoryWatcherService(nil)

	if !s.shouldIndex("resources/apostila.txt") {
		t.Fatal("first event for a supported file must index")
	}
	if s.shouldIndex("resources/apostila.txt") {
		t.Error("immediate repeat event must be suppressed by cooldown")
	}

	// 冷却窗口过后再次触发
	s.lastSeen["resources/apostila.txt"] = time.Now().Add(-6 * time.Second)
	if !s.shouldIndex("resources/apostila.txt") {
		t.Error("event after cooldown expiry must index again")
	}
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	s := NewDirectoryWatcherService(nil)

	if s.shouldIndex("resources/programa.exe") {
		t.Error("unsupported extension must not index")
	}
	if s.shouldIndex("resources/sem-extensao") {
		t.Error("file without extension must not index")
	}
	// 不同文件之间冷却互不影响
	if !s.shouldIndex("resources/outra.md") {
		t.Error("supported file must index even after unrelated events")
	}
}
