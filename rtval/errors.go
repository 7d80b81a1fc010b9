// Copyright 2023 The move-native Authors
// This file is part of the move-native library.
//
// The move-native library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The move-native library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the move-native library. If not, see <http://www.gnu.org/licenses/>.

package rtval

import (
	"fmt"

	log "github.com/inconshreveable/log15"
)

// InvariantError is the panic value raised for contract violations and
// internal-invariant violations. Neither class has a recoverable domain
// meaning: continuing after one risks reading or writing memory through a
// wrong layout, so every detection site fails fast. The concrete type exists
// so tests can assert the fatal signal.
type InvariantError struct {
	Op     string
	Reason string
}

func (e *InvariantError) Error() string {
	return "rtval: " + e.Op + ": " + e.Reason
}

// fatalf logs at critical level and panics with an InvariantError. It never
// returns.
func fatalf(op, format string, args ...interface{}) {
	reason := fmt.Sprintf(format, args...)
	log.Crit("Value runtime invariant violated", "op", op, "reason", reason)
	panic(&InvariantError{Op: op, Reason: reason})
}
