package di

import (
	"spotter/internal/providers"
	"spotter/internal/queue"
	"spotter/internal/remote"
	"spotter/internal/structures"
)

func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func provideQueue(conf *structures.Config, compressor queue.CompressorInterface, logger providers.Logger) (queue.QueueInterface, func(), error) {
	q, err := queue.NewQueue(conf, compressor, logger)
	if err != nil {
		return nil, nil, err
	}
	return q, func() {
		if err := q.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error closing offline queue: %s", err)
		}
	}, nil
}

func provideRemoteStore(conf *structures.Config, logger providers.Logger) (remote.RemoteStoreInterface, func(), error) {
	store, err := remote.NewRemoteStore(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error closing remote store: %s", err)
		}
	}, nil
}

func providePinger(store remote.RemoteStoreInterface) remote.Pinger {
	return store
}
