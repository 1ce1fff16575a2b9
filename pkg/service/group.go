package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/dskvich/impulsyia-backend/pkg/logger"
)

type Service interface {
	Name() string
	Run(context.Context) error
}

// Group runs services side by side. The first failure stops the rest.
type Group []Service

func (g Group) Run(ctx context.Context) error {
	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))
	wg.Add(len(g))
	for _, s := range g {
		go func(s Service) {
			defer wg.Done()
			if err := s.Run(runCtx); err != nil {
				slog.Error("service failed", "service", s.Name(), logger.Err(err))
				errCh <- fmt.Errorf("%s: %w", s.Name(), err)
				cancelFn()
			}
		}(s)
	}

	<-runCtx.Done()
	wg.Wait()
	close(errCh)

	var err error
	for srvErr := range errCh {
		err = multierror.Append(err, srvErr)
	}
	return err
}
