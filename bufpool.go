package linktest

import "sync"

// readChunkSize is the unit ReadLine pulls from the driver per call.
const readChunkSize = 256

var readBufPool = sync.Pool{
	New: func() any { return make([]byte, readChunkSize) },
}

func getReadBuf() []byte {
	return readBufPool.Get().([]byte)
}

func putReadBuf(buf []byte) {
	if len(buf) != readChunkSize {
		return // don't pool incorrectly sized buffers
	}
	readBufPool.Put(buf)
}
