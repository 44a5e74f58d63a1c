package service

import (
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIPerson(p *models.Person) *api.Person {
	return &api.Person{ID: p.ID, Name: p.Name}
}

func toAPICategory(c *models.Category) *api.Category {
	return &api.Category{ID: c.ID, Name: c.Name}
}

func toAPIExpense(e *models.Expense, people, categories map[int64]string) *api.Expense {
	shares := make([]*api.Share, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = &api.Share{
			PersonID:   s.PersonID,
			PersonName: people[s.PersonID],
			Amount:     s.Amount.Decimal(),
		}
	}
	return &api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Date:         calculator.FormatDate(e.Date),
		Amount:       e.Amount.Decimal(),
		PayerID:      e.PayerID,
		PayerName:    people[e.PayerID],
		CategoryID:   e.CategoryID,
		CategoryName: categories[e.CategoryID],
		Divided:      e.Divided,
		Shares:       shares,
	}
}

func toAPIPayment(p *models.Payment, people, categories map[int64]string) *api.Payment {
	return &api.Payment{
		ID:            p.ID,
		Date:          calculator.FormatDate(p.Date),
		Amount:        p.Amount.Decimal(),
		PayerID:       p.PayerID,
		PayerName:     people[p.PayerID],
		RecipientID:   p.RecipientID,
		RecipientName: people[p.RecipientID],
		CategoryID:    p.CategoryID,
		CategoryName:  categories[p.CategoryID],
		Note:          p.Note,
	}
}

func toAPIClosure(c *models.MonthClosure) *api.Closure {
	return &api.Closure{
		ID:           c.ID,
		Year:         c.Year,
		Month:        c.Month,
		CategoryID:   c.CategoryID,
		CategoryName: c.CategoryName,
		ClosedAt:     c.ClosedAt.UTC().Format(time.RFC3339),
		Note:         c.Note,
	}
}

func toAPIBalances(balances []calculator.Balance) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{
			PersonID:   b.PersonID,
			Name:       b.Name,
			Paid:       b.Paid.Decimal(),
			Owed:       b.Owed.Decimal(),
			Net:        b.Net.Decimal(),
			Receivable: b.Receivable.Decimal(),
			Payable:    b.Payable.Decimal(),
		}
	}
	return out
}

func toAPITransfers(transfers []calculator.Transfer) []*api.Transfer {
	out := make([]*api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = &api.Transfer{
			FromID:   t.FromID,
			FromName: t.FromName,
			ToID:     t.ToID,
			ToName:   t.ToName,
			Amount:   t.Amount.Decimal(),
		}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
