// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

const (
	// DefaultCommitSHA is the simulation commit the benchmarks ran at.
	DefaultCommitSHA = "c7692b8a98cb9c6b7f5048e36b6cabfd03b3433d"
	// DefaultBaseURL is the grabl data API root for the simulation repository.
	DefaultBaseURL = "https://grabl.io/api/data/jmsfltchr/simulation"
	// DefaultTokenEnv is the environment variable holding the grabl user token.
	DefaultTokenEnv = "GRABL_USER_TOKEN"
	// DefaultAuthScheme is the scheme of the Authorization header.
	DefaultAuthScheme = "Token"
	// DefaultUserAgent is sent with every API request.
	DefaultUserAgent = "Mozilla/5.0 (Windows; U; Windows NT 5.1; en-US; rv:1.9.0.7) Gecko/2009021910 Firefox/3.0.7"
)
