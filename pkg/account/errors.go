package account

import "errors"

var ErrEmptyUserID = errors.New("account.empty_user_id")
