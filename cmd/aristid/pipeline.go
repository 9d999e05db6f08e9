package main

import (
	"context"
	"sync"

	"github.com/cromo/aristid"
)

type order struct {
	ls          aristid.LSystem
	seq         int
	generations uint
	history     bool
	err         error
}

type result struct {
	seq         int
	generations []aristid.LSystem
	err         error
}

// buildPipeline fans orders out to workers and resolves their results back into sequence order.
func buildPipeline(ctx context.Context, opts options) (in chan<- *order, out <-chan *result) {
	workers := opts.workers
	if workers < 1 {
		workers = 1
	}

	sequencerQueue := make(chan *order, sequencerQueueSize)
	orderInQueue := make(chan *order, orderInQueueSize)
	resultQueue := make(chan *result, workers)
	outQueue := make(chan *result, outQueueSize)

	go sequence(sequencerQueue, orderInQueue, opts.history)

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			run(ctx, orderInQueue, resultQueue)
		}()
	}
	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	go resolve(resultQueue, outQueue)

	return sequencerQueue, outQueue
}

func sequence(in <-chan *order, orderInQueue chan<- *order, history bool) {
	for o := range in {
		o.history = history
		orderInQueue <- o
	}
	close(orderInQueue)
}

func run(ctx context.Context, orderInQueue <-chan *order, resultQueue chan<- *result) {
	for o := range orderInQueue {
		res := &result{seq: o.seq, err: o.err}
		if res.err == nil {
			res.generations, res.err = derive(ctx, o)
		}
		resultQueue <- res
	}
}

func derive(ctx context.Context, o *order) ([]aristid.LSystem, error) {
	if !o.history {
		last, err := o.ls.Advance(ctx, o.generations)
		return []aristid.LSystem{last}, err
	}

	history, err := o.ls.ApplyN(ctx, o.generations)
	return append([]aristid.LSystem{o.ls}, history...), err
}

// resolve resolves the results to their correct sequence.
// A result in advance waits in the buffer until every result before it was sent.
func resolve(resultQueue <-chan *result, outQueue chan<- *result) {
	next := 0
	buffer := make(map[int]*result)
	for res := range resultQueue {
		buffer[res.seq] = res
		for {
			buffered, ok := buffer[next]
			if !ok {
				break
			}
			outQueue <- buffered
			delete(buffer, next)
			next++
		}
	}
	close(outQueue)
}
