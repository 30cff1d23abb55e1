package idgen

import (
	"sync"
	"time"
)

// Generator ID 生成器接口，便于测试替换
type Generator interface {
	NextID() int64
}

// SnowflakeIDGenerator 雪花ID生成器
// ID格式: 毫秒时间戳(41位) | 机器ID(10位) | 序列号(12位)
// 用于后台备注等需要按时间有序的主键
type SnowflakeIDGenerator struct {
	mu        sync.Mutex
	epoch     int64 // 起始时间戳，毫秒 (2024-01-01 00:00:00 UTC)
	machineID int64
	sequence  int64
	lastTime  int64
	now       func() time.Time
}

const (
	machineBits  = 10
	sequenceBits = 12
	maxMachineID = 1<<machineBits - 1
	maxSequence  = 1<<sequenceBits - 1
)

// NewSnowflakeIDGenerator 创建ID生成器
// machineID: 机器ID，范围 0-1023，越界时按 0 处理
func NewSnowflakeIDGenerator(machineID int64) *SnowflakeIDGenerator {
	if machineID < 0 || machineID > maxMachineID {
		machineID = 0
	}

	return &SnowflakeIDGenerator{
		epoch:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		machineID: machineID,
		now:       time.Now,
	}
}

// NextID 生成下一个ID，同一实例内严格递增
func (g *SnowflakeIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UnixMilli()
	if now < g.lastTime {
		// 时钟回拨，沿用上次时间戳继续递增序列号
		now = g.lastTime
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			// 当前毫秒序列号用尽，等待下一毫秒
			for now <= g.lastTime {
				now = g.now().UnixMilli()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	return (now-g.epoch)<<(machineBits+sequenceBits) | g.machineID<<sequenceBits | g.sequence
}
