package payment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

type Type string

const (
	TypeDeposit  Type = "DEPOSIT"
	TypeProgress Type = "PROGRESS"
	TypeBalance  Type = "BALANCE"
	TypeFull     Type = "FULL"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeDeposit, TypeProgress, TypeBalance, TypeFull:
		return t, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("payment type", fmt.Errorf("%q is not a valid type", s))
}

type Status string

const (
	StatusPending         Status = "PENDING"
	StatusReceiptUploaded Status = "RECEIPT_UPLOADED"
	StatusConfirmed       Status = "CONFIRMED"
	StatusRejected        Status = "REJECTED"
	StatusOverdue         Status = "OVERDUE"
	StatusCancelled       Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusReceiptUploaded, StatusConfirmed, StatusRejected, StatusOverdue, StatusCancelled:
		return st, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid status", s))
}

type Method string

const (
	MethodUnspecified  Method = ""
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCreditCard   Method = "CREDIT_CARD"
	MethodLetterCredit Method = "LETTER_OF_CREDIT"
	MethodOther        Method = "OTHER"
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodUnspecified, MethodBankTransfer, MethodCreditCard, MethodLetterCredit, MethodOther:
		return m, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not a valid method", s))
}
