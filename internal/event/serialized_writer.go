// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package event

import (
	"io"
	"sync"
)

// serializedWriter guards an io.Writer with a mutex so concurrently written
// events are not interwoven in the sink.
type serializedWriter struct {
	l sync.Mutex
	w io.Writer
}

func (s *serializedWriter) Write(p []byte) (int, error) {
	s.l.Lock()
	defer s.l.Unlock()
	return s.w.Write(p)
}
