package systems

import (
	"sort"
	"time"
)

// TimerID 定时器句柄（相当于 setTimeout 的返回值），0 保留为无效句柄
type TimerID uint64

type pendingTimer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// TimerSystem 基于帧时间的一次性定时器
//
// 时间只随 Update 的 deltaTime 推进，保证在测试中可精确控制。
// 同一时刻到期的定时器按创建顺序触发。
type TimerSystem struct {
	now    time.Duration
	nextID TimerID
	timers map[TimerID]*pendingTimer
}

// NewTimerSystem 创建定时器系统
func NewTimerSystem() *TimerSystem {
	return &TimerSystem{
		nextID: 1,
		timers: make(map[TimerID]*pendingTimer),
	}
}

// AfterFunc 在 d 之后执行 fn（d <= 0 时在下一次 Update 执行）
func (ts *TimerSystem) AfterFunc(d time.Duration, fn func()) TimerID {
	id := ts.nextID
	ts.nextID++
	if d < 0 {
		d = 0
	}
	ts.timers[id] = &pendingTimer{id: id, due: ts.now + d, fn: fn}
	return id
}

// Stop 停止定时器，返回定时器是否仍处于待触发状态
func (ts *TimerSystem) Stop(id TimerID) bool {
	if _, ok := ts.timers[id]; !ok {
		return false
	}
	delete(ts.timers, id)
	return true
}

// Update 推进时间并触发所有到期的定时器
// deltaTime: 距离上一帧的时间（秒）
func (ts *TimerSystem) Update(deltaTime float64) {
	ts.now += time.Duration(deltaTime * float64(time.Second))

	due := make([]*pendingTimer, 0)
	for _, t := range ts.timers {
		if t.due <= ts.now {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	for _, t := range due {
		// 前一个回调可能已停止后续定时器
		if _, ok := ts.timers[t.id]; !ok {
			continue
		}
		delete(ts.timers, t.id)
		t.fn()
	}
}

// Active 返回待触发的定时器数量
func (ts *TimerSystem) Active() int {
	return len(ts.timers)
}

// Now 返回定时器系统的当前时间
func (ts *TimerSystem) Now() time.Duration {
	return ts.now
}
