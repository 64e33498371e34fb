package checkoutevents

const (
	TopicName             = "checkout"
	checkoutStartedName   = TopicName + ".checkout.started"
	checkoutCompletedName = TopicName + ".checkout.completed"
)

type CheckoutStarted struct {
	ProviderName  string
	CheckoutUID   string
	AmountInCents int64
	Currency      string
	ShopperUID    string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.CheckoutUID
}

type CheckoutCompleted struct {
	ProviderName string
	CheckoutUID  string
	Status       string
	Success      bool
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.CheckoutUID
}
