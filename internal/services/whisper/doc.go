// Package whisper is a thin client for the remote speech-to-text API.
//
// It submits audio as a multipart upload and normalizes the heterogeneous
// response payload into a canonical Document through an ordered list of
// extraction strategies. Transport and provider failures surface as
// services.ErrAPI; payloads no strategy can make sense of surface as
// services.ErrResponseFormat. The client never retries; callers that want
// retry semantics inject a retrying http.Client.
package whisper
