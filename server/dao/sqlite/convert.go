package sqlite

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/mawais/slc/server/dao"
	"github.com/mawais/slc/simplelang/scan"
)

// conversions between Go types and their stored SQLite representations.
// UUIDs are stored as their string form, times as Unix seconds, emails as
// their address string (empty for none), roles as their string names, and
// token sequences as base64-encoded binary blobs.

func convertToDB_UUID(id uuid.UUID) string {
	return id.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(unixSec int64, target *time.Time) error {
	*target = time.Unix(unixSec, 0)
	return nil
}

func convertToDB_Email(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return email.Address
}

func convertFromDB_Email(s string, target **mail.Address) error {
	if s == "" {
		*target = nil
		return nil
	}

	email, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	*target = email
	return nil
}

func convertToDB_Role(r dao.Role) string {
	return r.String()
}

func convertFromDB_Role(s string, target *dao.Role) error {
	r, err := dao.ParseRole(s)
	if err != nil {
		return err
	}
	*target = r
	return nil
}

func convertToDB_Tokens(tokens []scan.Token) string {
	return base64.StdEncoding.EncodeToString(scan.EncodeTokens(tokens))
}

func convertFromDB_Tokens(s string, target *[]scan.Token) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", dao.ErrDecodingFailure, err.Error())
	}

	tokens, err := scan.DecodeTokens(data)
	if err != nil {
		return fmt.Errorf("%w: %s", dao.ErrDecodingFailure, err.Error())
	}
	*target = tokens
	return nil
}
