package pages

import (
	"fmt"
	"html"

	"github.com/a-h/templ"
)

// HomePage renders the landing page
func HomePage() templ.Component {
	return layout("Meditation Mondays", `
        <section class="hero">
            <h1>Meditation Mondays</h1>
            <p>A weekly evening of guided meditation, breathwork, and movement.</p>
            <a class="cta" href="/tickets">Buy Tickets!</a>
        </section>
        <section class="about">
            <h2>About</h2>
            <p>Every Monday we gather for an hour of stillness and practice.
            All levels welcome. Mats and cushions provided.</p>
        </section>`)
}

// ClassesPage renders the weekly schedule
func ClassesPage() templ.Component {
	return layout("Classes - Meditation Mondays", `
        <section class="schedule">
            <h1>Weekly Schedule</h1>
            <ul>
                <li>6:30pm &mdash; Doors open, tea</li>
                <li>7:00pm &mdash; Guided meditation</li>
                <li>7:45pm &mdash; Breathwork</li>
                <li>8:15pm &mdash; Closing circle</li>
            </ul>
            <p>Held every Monday at the community hall on Main Street.</p>
        </section>`)
}

// MovementPage renders the movement class page
func MovementPage() templ.Component {
	return layout("Movement - Meditation Mondays", `
        <section class="movement">
            <h1>Movement Practice</h1>
            <p>Slow flow yoga and mindful movement, offered before the main
            sit. Bring comfortable clothes; no experience needed.</p>
            <a class="cta" href="/tickets">Buy Tickets!</a>
        </section>`)
}

// TicketsPage renders the payment element checkout page. The publishable
// key is embedded for the browser-side SDK.
func TicketsPage(publishableKey string) templ.Component {
	return layout("Tickets - Meditation Mondays", fmt.Sprintf(`
        <section class="tickets">
            <h1>Tickets</h1>
            <p>$9 per ticket, up to 10 per order.</p>
            <form id="payment-form" data-publishable-key="%s">
                <label for="quantity">Tickets</label>
                <select id="quantity" name="quantity">
                    <option value="1" selected>1</option>
                    <option value="2">2</option>
                    <option value="3">3</option>
                    <option value="4">4</option>
                    <option value="5">5</option>
                    <option value="6">6</option>
                    <option value="7">7</option>
                    <option value="8">8</option>
                    <option value="9">9</option>
                    <option value="10">10</option>
                </select>
                <div id="payment-element"></div>
                <button id="submit" type="submit">Pay now</button>
                <div id="payment-message" role="alert"></div>
            </form>
        </section>
        <script src="https://js.stripe.com/v3/"></script>
        <script src="/static/js/checkout.js"></script>`,
		html.EscapeString(publishableKey)))
}

// PaymentResultPage renders the outcome of a redirect-based payment return
// on the tickets page, without starting a new checkout.
func PaymentResultPage(message string, succeeded bool) templ.Component {
	class := "payment-failed"
	if succeeded {
		class = "payment-succeeded"
	}
	return layout("Tickets - Meditation Mondays", fmt.Sprintf(`
        <section class="tickets">
            <h1>Tickets</h1>
            <p class="%s">%s</p>
            <a class="cta" href="/tickets">Back to tickets</a>
        </section>`, class, html.EscapeString(message)))
}

// SuccessPage renders the hosted checkout success redirect target
func SuccessPage() templ.Component {
	return layout("Payment Successful - Meditation Mondays", `
        <section class="payment-result">
            <h1>Payment Successful!</h1>
            <p>Thank you for purchasing your yoga ticket. See you at the event!</p>
        </section>`)
}

// CancelPage renders the hosted checkout cancel redirect target
func CancelPage() templ.Component {
	return layout("Payment Canceled - Meditation Mondays", `
        <section class="payment-result">
            <h1>Payment Canceled</h1>
            <p>You have not been charged. You can try again.</p>
            <a class="cta" href="/tickets">Back to tickets</a>
        </section>`)
}
