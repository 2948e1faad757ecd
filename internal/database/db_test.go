package database

import (
	"testing"
	"time"
)

func TestBuildDSN(t *testing.T) {
	got := buildDSN("app", "secret", "db.internal", "3306", "booking")
	want := "app:secret@tcp(db.internal:3306)/booking?charset=utf8mb4&parseTime=true&loc=UTC"
	if got != want {
		t.Errorf("buildDSN = %q, want %q", got, want)
	}
}

func TestBuildDSN_NoPassword(t *testing.T) {
	got := buildDSN("app", "", "localhost", "3306", "booking")
	want := "app@tcp(localhost:3306)/booking?charset=utf8mb4&parseTime=true&loc=UTC"
	if got != want {
		t.Errorf("buildDSN = %q, want %q", got, want)
	}
}

func TestPoolKnobs(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	if got := poolInt("DB_MAX_OPEN_CONNS", 20); got != 50 {
		t.Errorf("poolInt override = %d, want 50", got)
	}
	if got := poolInt("DB_MAX_IDLE_CONNS", 10); got != 10 {
		t.Errorf("poolInt default = %d, want 10", got)
	}
	t.Setenv("DB_CONN_MAX_LIFETIME", "junk")
	if got := poolDur("DB_CONN_MAX_LIFETIME", 15*time.Minute); got != 15*time.Minute {
		t.Errorf("poolDur with bad value = %s, want default", got)
	}
	t.Setenv("DB_CONN_MAX_LIFETIME", "1h")
	if got := poolDur("DB_CONN_MAX_LIFETIME", 15*time.Minute); got != time.Hour {
		t.Errorf("poolDur override = %s, want 1h", got)
	}
}
