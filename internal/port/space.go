package port

// SpaceProbe reports how many bytes are currently available on the volume
// containing the given path. A probe failure is fatal to an eviction run:
// without it there is no meaningful deficit to compute.
type SpaceProbe interface {
	AvailableBytes(path string) (int64, error)
}
