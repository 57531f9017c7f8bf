package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestGenerateWithFixedEntropy(t *testing.T) {
	gen := NewGeneratorWithEntropy(bytes.NewReader(bytes.Repeat([]byte{0xff}, 20)))

	for i := 0; i < 2; i++ {
		id := gen.GenerateWithPrefix(RequestPrefix)
		if !strings.HasSuffix(id, "ZZZZZZZZZZZZZZZZ") {
			t.Errorf("entropy section should come from the reader, got: %s", id)
		}
		if !IsValidPrefixed(id, RequestPrefix) {
			t.Errorf("expected %s to be a valid request id", id)
		}
	}
}

func TestTypedIDGeneration(t *testing.T) {
	reqID := NewRequestID()
	traceID := NewTraceID()

	if !strings.HasPrefix(string(reqID), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}
	if !strings.HasPrefix(string(traceID), "trc_") {
		t.Errorf("TraceID should start with 'trc_', got: %s", traceID)
	}
}

func TestIsValid(t *testing.T) {
	gen := NewGenerator()

	validID := gen.GenerateString()
	if !IsValid(validID) {
		t.Error("Generated ULID should be valid")
	}

	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestIsValidPrefixed(t *testing.T) {
	traceID := string(NewTraceID())

	if !IsValidPrefixed(traceID, TracePrefix) {
		t.Errorf("expected %s to be a valid trace id", traceID)
	}
	if IsValidPrefixed(traceID, RequestPrefix) {
		t.Errorf("trace id should not validate with request prefix")
	}
	if IsValidPrefixed("trc_<script>", TracePrefix) {
		t.Error("garbage suffix should be rejected")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	idChan := make(chan string, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- gen.GenerateString()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[string]bool)
	for id := range idChan {
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
