package webui

import (
	"testing"
	"time"
)

func waitForCompletion(t *testing.T, j *Jobs, id string) *Result {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r, ok := j.Get(id)
		if ok && r.Status == StatusCompleted {
			return r
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("job %s did not complete in time", id)
	return nil
}

func TestSubmitCompletesCleanSource(t *testing.T) {
	j := NewJobs()
	id := j.Submit("int main(){return 0;}")
	r := waitForCompletion(t, j, id)

	if r.ScanErr != "" || r.ParseErr != "" {
		t.Fatalf("ScanErr=%q ParseErr=%q, want both empty", r.ScanErr, r.ParseErr)
	}
	if r.Tree == nil {
		t.Fatal("Tree is nil for a clean submission")
	}
}

func TestSubmitRecordsParseError(t *testing.T) {
	j := NewJobs()
	id := j.Submit("int x = ;")
	r := waitForCompletion(t, j, id)

	if r.ParseErr == "" {
		t.Fatal("ParseErr is empty, want a syntax error")
	}
}

func TestConcurrentJobsAreIsolated(t *testing.T) {
	j := NewJobs()
	idA := j.Submit("int a;")
	idB := j.Submit("int x = ;")

	resA := waitForCompletion(t, j, idA)
	resB := waitForCompletion(t, j, idB)

	if resA.ParseErr != "" {
		t.Errorf("job A ParseErr = %q, want empty", resA.ParseErr)
	}
	if resB.ParseErr == "" {
		t.Error("job B ParseErr is empty, want a syntax error")
	}
	if resA.ID == resB.ID {
		t.Fatalf("jobs got the same id %q", resA.ID)
	}
}
