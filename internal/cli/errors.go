package cli

import "errors"

var errNotLoggedIn = errors.New("not logged in; run `shoesteraj login <username>` first")
