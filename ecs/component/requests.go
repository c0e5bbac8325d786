package component

// SaveRequest asks the persistence system to write every transition
// record to Path. LoadRequest restores them.
type SaveRequest struct {
	Path string
}

var SaveRequestComponent = NewComponent[SaveRequest]()

type LoadRequest struct {
	Path string
}

var LoadRequestComponent = NewComponent[LoadRequest]()
