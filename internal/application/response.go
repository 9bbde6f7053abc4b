package application

import "smart-home-mock/internal/domain"

func buildHeader(req *domain.Request, responseName string) domain.Header {
	return domain.Header{
		Namespace:      req.Header.Namespace,
		Name:           responseName,
		PayloadVersion: domain.PayloadVersion,
		MessageID:      req.Header.MessageID,
	}
}

func buildResponse(header domain.Header, payload any) *domain.Response {
	return &domain.Response{
		Header:  header,
		Payload: payload,
	}
}

func unexpectedRequestName(req *domain.Request) *domain.Response {
	header := buildHeader(req, string(domain.UnexpectedInformationReceivedError))
	return buildResponse(header, domain.UnexpectedInformationPayload{
		FaultingParameter: "request.name: " + req.Header.Name,
	})
}
