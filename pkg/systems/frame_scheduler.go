package systems

// FrameHandle 帧回调句柄（相当于 requestAnimationFrame 的返回值）
// 0 保留为无效句柄
type FrameHandle uint64

// FrameScheduler 帧回调调度器
//
// 回调在下一次 Flush（每个逻辑帧一次）时按请求顺序执行：
//   - Flush 期间新请求的回调推迟到下一次 Flush
//   - 已取消的回调永远不会执行，即使它属于当前批次
type FrameScheduler struct {
	nextHandle FrameHandle
	callbacks  map[FrameHandle]func()
	order      []FrameHandle
}

// NewFrameScheduler 创建帧回调调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		nextHandle: 1,
		callbacks:  make(map[FrameHandle]func()),
	}
}

// RequestFrame 请求在下一帧执行 fn，返回可用于取消的句柄
func (fs *FrameScheduler) RequestFrame(fn func()) FrameHandle {
	h := fs.nextHandle
	fs.nextHandle++
	fs.callbacks[h] = fn
	fs.order = append(fs.order, h)
	return h
}

// CancelFrame 取消尚未执行的回调，返回是否确实取消了一个待执行回调
func (fs *FrameScheduler) CancelFrame(h FrameHandle) bool {
	if _, ok := fs.callbacks[h]; !ok {
		return false
	}
	delete(fs.callbacks, h)
	return true
}

// Flush 执行当前批次的所有回调，返回实际执行的数量
func (fs *FrameScheduler) Flush() int {
	batch := fs.order
	fs.order = nil

	executed := 0
	for _, h := range batch {
		fn, ok := fs.callbacks[h]
		if !ok {
			continue // 已取消
		}
		delete(fs.callbacks, h)
		fn()
		executed++
	}
	return executed
}

// Pending 返回待执行的回调数量
func (fs *FrameScheduler) Pending() int {
	return len(fs.callbacks)
}
