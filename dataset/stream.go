package dataset

import "context"

/*
Reader is implemented by backends from which rows can be sequentially
read.

Its Read method returns a channel on which rows are sent and a channel
on which at most one error is sent. Both are closed once reading is
over.
*/
type Reader interface {
	Read(context.Context) (<-chan Row, <-chan error)
}

/*
Writer is implemented by backends to which rows can be written.

Its Write method will attempt to write the given rows and will return
the number actually written and an error if not all could be. Its Flush
method ensures pending writes finish before returning.
*/
type Writer interface {
	Write(context.Context, []Row) (int, error)
	Flush() error
}

/*
Stream takes a context and a producer function and runs the producer
on a new goroutine, returning the channels a Reader's Read method
returns. The producer is passed an emit function that sends a row
and returns false once the context is done, after which the producer
should stop. If it stopped because of the context, the context error
is sent on the error channel.
*/
func Stream(ctx context.Context, produce func(emit func(Row) bool) error) (<-chan Row, <-chan error) {
	rows := make(chan Row)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(rows)
		var stopped bool
		err := produce(func(r Row) bool {
			select {
			case <-ctx.Done():
				stopped = true
				return false
			case rows <- r:
				return true
			}
		})
		if err == nil && stopped {
			err = ctx.Err()
		}
		if err != nil {
			errs <- err
		}
	}()
	return rows, errs
}

/*
ReadAll takes a context and a Reader and returns all the rows read from
it, or an error if the reading fails.
*/
func ReadAll(ctx context.Context, r Reader) ([]Row, error) {
	var result []Row
	rows, errs := r.Read(ctx)
	for row := range rows {
		result = append(result, row)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return result, nil
}
