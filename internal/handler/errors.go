// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransportHandlers means the server config names no address at all.
var errNoTransportHandlers = errors.New("server config enables neither http nor grpc")
