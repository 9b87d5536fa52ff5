// Package contact implements the commitment form pipeline behind
// POST /api/send.
//
// A request is handled in a fixed order:
//
//  1. the caller address is resolved (connection address, proxy headers only
//     when trusted, 127.0.0.1 when unknown);
//  2. a per-address sliding window limiter admits at most RateLimit requests
//     per RateWindow, answering 429 otherwise;
//  3. an unconfigured endpoint answers the configuration error without
//     reading the body;
//  4. the JSON body is decoded and checked by ParseSubmission, answering 400
//     with one issue per failing field;
//  5. the Composer renders the notification email and the Service hands it
//     to the email sender exactly once.
//
// Provider failures answer 500 with the provider detail; anything else is a
// generic 500 whose cause is only logged.
//
// The form subpackage holds the client side controller that talks to this
// endpoint.
package contact
