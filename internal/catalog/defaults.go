package catalog

import (
	"time"

	"github.com/cleared-dev/headroom/internal/item"
)

// Default returns the example catalog written by "headroom init".
func Default() []Entry {
	return exampleHousehold()
}

func exampleHousehold() []Entry {
	return []Entry{
		// Incomes
		{Kind: item.KindIncremental, Name: "= Salary =", Amount: NewAmount(4060), Start: NewDate(2022, time.February, 25),
			IncreaseAmount: NewAmount(500), IncreaseEvery: 12},
		{Kind: item.KindIncremental, Name: "Holiday Allowance", Amount: MustAmount("1870.85"), Start: NewDate(2022, time.May, 25),
			EveryMonths: 12, IncreaseAmount: MustAmount("230.40"), IncreaseEvery: 12},

		// Subscriptions
		{Kind: item.KindRecurring, Name: "Game Pass", Amount: NewAmount(-13), Start: NewDate(2022, time.November, 1)},
		{Kind: item.KindRecurring, Name: "Bike Lease", Amount: NewAmount(-24), Start: NewDate(2022, time.October, 1)},
		{Kind: item.KindRecurring, Name: "Bank Subscription", Amount: NewAmount(-5), Start: NewDate(2022, time.October, 1)},
		{Kind: item.KindRecurring, Name: "Streaming", Amount: NewAmount(-4), Start: NewDate(2022, time.September, 20)},
		{Kind: item.KindRecurring, Name: "Train Pass", Amount: NewAmount(-35), Start: NewDate(2022, time.November, 27), End: NewDate(2023, time.October, 26)},
		{Kind: item.KindRecurring, Name: "Phone Plan", Amount: NewAmount(-75), Start: NewDate(2022, time.November, 27), End: NewDate(2024, time.April, 1)},
		{Kind: item.KindRecurring, Name: "Health Insurance", Amount: NewAmount(-137), Start: NewDate(2022, time.September, 27)},

		// Yearly subscriptions
		{Kind: item.KindRecurring, Name: "IDE License", Amount: NewAmount(-302), Start: NewDate(2023, time.July, 7), EveryMonths: 12},
		{Kind: item.KindRecurring, Name: "Delivery Membership", Amount: NewAmount(-12), Start: NewDate(2023, time.June, 24), EveryMonths: 12},

		// Home
		{Kind: item.KindRecurring, Name: "Living Costs", Amount: NewAmount(-1000), Start: NewDate(2022, time.November, 26)},
		{Kind: item.KindRecurring, Name: "Energy", Amount: NewAmount(-48), Start: NewDate(2022, time.October, 1)},
		{Kind: item.KindRecurring, Name: "Water", Amount: NewAmount(-26), Start: NewDate(2022, time.November, 1), EveryMonths: 2},
		{Kind: item.KindRecurring, Name: "Rent", Amount: NewAmount(-1051), Start: NewDate(2022, time.July, 26)},

		// Bank accounts
		{Kind: item.KindOneTime, Name: "Savings Account", Amount: NewAmount(500)},
		{Kind: item.KindOneTime, Name: "Checking Account", Amount: NewAmount(500)},
		{Kind: item.KindOneTime, Name: "Rest of This Month", Amount: NewAmount(-50)},

		// Payments and trips
		{Kind: item.KindOneTime, Name: "Insurance Excess", Amount: NewAmount(-250), Start: NewDate(2022, time.December, 28)},
		{Kind: item.KindOneTime, Name: "Winter Trip", Amount: NewAmount(-1300), Start: NewDate(2023, time.January, 28)},
		{Kind: item.KindOneTime, Name: "Trip Refund", Amount: NewAmount(300), Start: NewDate(2023, time.January, 28)},

		// Goals, 10 = want it now, 0 = don't care
		{Kind: item.KindGoal, Name: "Headphones", Amount: NewAmount(-300), Importance: 8},
		{Kind: item.KindGoal, Name: "Sunglasses", Amount: NewAmount(-250), Importance: 8},
		{Kind: item.KindGoal, Name: "City Bike", Amount: NewAmount(-1500), Importance: 6},
		{Kind: item.KindGoal, Name: "Robot Vacuum", Amount: NewAmount(-1750), Importance: 4},
		{Kind: item.KindGoal, Name: "Driving License", Amount: NewAmount(-3000), Importance: 2},
		{Kind: item.KindGoal, Name: "E-bike", Amount: NewAmount(-6500), Importance: 0},
	}
}
