package service

import (
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
)

// 購物車為空時用來中止交易，不會傳到service之外
var errCartEmpty = errors.New("cart is empty")

// storeErr 把store錯誤轉成AnaError
// 查無資料轉成notFoundCode，已經是AnaError的原樣回傳，其餘一律視為內部錯誤
func storeErr(err error, notFoundCode er.ErrorCode) error {
	if err == nil {
		return nil
	}
	var anaErr *er.AnaError
	if errors.As(err, &anaErr) {
		return anaErr
	}
	if notFoundCode != 0 && db.IsNotFound(err) {
		return er.New(notFoundCode, "")
	}
	return er.Wrap(er.InternalErrorCode, "", err)
}
