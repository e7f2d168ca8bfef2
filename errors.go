// Copyright 2024 The heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "fmt"

// VerifyError reports a single violated invariant found by Heap.Verify,
// styled after lldb's ErrINVAL/ErrILSEQ: a short machine-checkable reason
// plus the address at fault.
type VerifyError struct {
	Addr   uintptr
	Reason string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("heapalloc: invariant violated at %#x: %s", e.Addr, e.Reason)
}

func verifyErrorf(addr uintptr, format string, args ...interface{}) *VerifyError {
	return &VerifyError{Addr: addr, Reason: fmt.Sprintf(format, args...)}
}
