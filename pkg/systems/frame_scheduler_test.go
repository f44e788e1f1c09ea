package systems

import "testing"

// TestFrameSchedulerRunsInOrder 回调按请求顺序在 Flush 时执行
func TestFrameSchedulerRunsInOrder(t *testing.T) {
	fs := NewFrameScheduler()
	var calls []int

	fs.RequestFrame(func() { calls = append(calls, 1) })
	fs.RequestFrame(func() { calls = append(calls, 2) })

	if len(calls) != 0 {
		t.Fatal("callbacks must not run before Flush")
	}
	if fs.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", fs.Pending())
	}

	if n := fs.Flush(); n != 2 {
		t.Errorf("Flush executed %d callbacks, want 2", n)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("calls = %v, want [1 2]", calls)
	}
	if fs.Pending() != 0 {
		t.Errorf("Pending after flush = %d, want 0", fs.Pending())
	}
}

// TestFrameSchedulerCancel 取消的回调不会执行
func TestFrameSchedulerCancel(t *testing.T) {
	fs := NewFrameScheduler()
	ran := false

	h := fs.RequestFrame(func() { ran = true })
	if !fs.CancelFrame(h) {
		t.Error("CancelFrame should report a pending callback")
	}
	if fs.CancelFrame(h) {
		t.Error("second CancelFrame should report nothing to cancel")
	}

	fs.Flush()
	if ran {
		t.Error("cancelled callback must not run")
	}
}

// TestFrameSchedulerRequestDuringFlush Flush 期间的新请求推迟到下一帧
func TestFrameSchedulerRequestDuringFlush(t *testing.T) {
	fs := NewFrameScheduler()
	count := 0

	var tick func()
	tick = func() {
		count++
		fs.RequestFrame(tick)
	}
	fs.RequestFrame(tick)

	fs.Flush()
	if count != 1 {
		t.Fatalf("count after first flush = %d, want 1", count)
	}
	fs.Flush()
	if count != 2 {
		t.Fatalf("count after second flush = %d, want 2", count)
	}
}

// TestFrameSchedulerCancelWithinBatch 同一批次中被前一个回调取消的回调不执行
func TestFrameSchedulerCancelWithinBatch(t *testing.T) {
	fs := NewFrameScheduler()
	secondRan := false

	var second FrameHandle
	fs.RequestFrame(func() { fs.CancelFrame(second) })
	second = fs.RequestFrame(func() { secondRan = true })

	if n := fs.Flush(); n != 1 {
		t.Errorf("Flush executed %d callbacks, want 1", n)
	}
	if secondRan {
		t.Error("callback cancelled earlier in the same batch must not run")
	}
}
