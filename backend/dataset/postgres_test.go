package dataset

import (
	"context"
	"os"
	"testing"
	"time"
)

// Requires a database with a populated rainfall_observations table.
func TestPostgresSource_Load(t *testing.T) {
	dsn := os.Getenv("RAINWATER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("RAINWATER_TEST_DATABASE_URL not set")
	}

	src, err := NewPostgresSource(dsn)
	if err != nil {
		t.Fatalf("NewPostgresSource failed: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	obs, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(obs) == 0 {
		t.Fatal("Expected observations from database")
	}
	for _, o := range obs {
		if o.District == "" || o.Station == "" || o.Year == 0 {
			t.Fatalf("Incomplete row %+v", o)
		}
	}
}

func TestNewPostgresSource_IsLazy(t *testing.T) {
	src, err := NewPostgresSource("postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	if err != nil {
		t.Fatalf("Expected lazy open to succeed, got %v", err)
	}
	defer src.Close()
	if src.Name() != "postgres" {
		t.Errorf("Expected name postgres, got %s", src.Name())
	}
}
