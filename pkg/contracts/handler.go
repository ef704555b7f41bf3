package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Worker is a background component that must be drained on shutdown.
type Worker interface {
	Stop()
}
