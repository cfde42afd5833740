//go:build !linux

package samplefile

func prefaultRegion([]byte) {}

func fadviseSequential(int, int64) {}
